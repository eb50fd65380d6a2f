package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestNew_WiresOptionalChannelsAsNil(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	path := writeConfig(t, `
env: test
cms:
  base_url: http://cms.invalid/api
site:
  name: Studio
`)
	a, err := New(context.Background(), path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Clients.Mailer != nil || a.Clients.CRM != nil {
		t.Fatalf("expected unconfigured channels to stay nil")
	}
	if a.Services.Assembler == nil || a.Services.Static == nil {
		t.Fatalf("services not wired: %+v", a.Services)
	}

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNew_RequiresCMSBaseURL(t *testing.T) {
	t.Setenv("SITE_CMS_BASE_URL", "")
	path := writeConfig(t, "env: test\n")
	if _, err := New(context.Background(), path); err == nil {
		t.Fatalf("expected error without cms.base_url")
	}
}

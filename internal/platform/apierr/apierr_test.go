package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndCodeOf(t *testing.T) {
	err := fmt.Errorf("contact: %w", New(http.StatusBadRequest, "invalid_request", errors.New("email is required")))
	if got := StatusOf(err); got != http.StatusBadRequest {
		t.Fatalf("status=%d", got)
	}
	if got := CodeOf(err); got != "invalid_request" {
		t.Fatalf("code=%q", got)
	}
	if got := StatusOf(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status=%d", got)
	}
}

package snapshot

import (
	"context"
	"testing"

	"github.com/yungbote/blockpage/internal/cms"
)

func TestMemoryStore_RoundTripsSnapshots(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var nav cms.Navigation
	ok, err := s.Get(ctx, KeyNavigation, &nav)
	if err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	in := cms.Navigation{Items: []cms.NavLink{{Label: "Work", Href: "/case-studies"}}}
	if err := s.Put(ctx, KeyNavigation, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	in.Items[0].Label = "mutated"

	ok, err = s.Get(ctx, KeyNavigation, &nav)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if nav.Items[0].Label != "Work" {
		t.Fatalf("label=%q", nav.Items[0].Label)
	}
}

func TestNewRedis_RequiresAddr(t *testing.T) {
	if _, err := NewRedis(context.Background(), nil, Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

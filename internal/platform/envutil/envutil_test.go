package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("BP_TEST_DURATION", "3")
	if got := Duration("BP_TEST_DURATION", time.Second); got != 3*time.Second {
		t.Fatalf("got=%s", got)
	}
	t.Setenv("BP_TEST_DURATION", "250ms")
	if got := Duration("BP_TEST_DURATION", time.Second); got != 250*time.Millisecond {
		t.Fatalf("got=%s", got)
	}
	t.Setenv("BP_TEST_DURATION", "soon")
	if got := Duration("BP_TEST_DURATION", time.Second); got != time.Second {
		t.Fatalf("got=%s", got)
	}
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("BP_TEST_BOOL", "yes")
	if !Bool("BP_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	if Bool("BP_TEST_UNSET_BOOL", false) {
		t.Fatalf("expected default false")
	}
	t.Setenv("BP_TEST_INT", "x")
	if got := Int("BP_TEST_INT", 7); got != 7 {
		t.Fatalf("got=%d", got)
	}
}

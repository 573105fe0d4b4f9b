package envutil

import "testing"

func TestStr(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  value  ")
	if got := Str("ENVUTIL_TEST_STR", "def"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := Str("ENVUTIL_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("expected default on parse failure, got %d", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_BOOL", "on")
	if !Bool("ENVUTIL_TEST_BOOL", false) {
		t.Fatalf("expected true for 'on'")
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "off")
	if Bool("ENVUTIL_TEST_BOOL", true) {
		t.Fatalf("expected false for 'off'")
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	if !Bool("ENVUTIL_TEST_BOOL", true) {
		t.Fatalf("expected default for unknown value")
	}
}

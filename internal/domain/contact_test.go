package domain

import "testing"

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail(""); err != nil {
		t.Fatalf("blank email: %v", err)
	}
	if err := ValidateEmail("   "); err != nil {
		t.Fatalf("whitespace email: %v", err)
	}
	if err := ValidateEmail("amy@example.com"); err != nil {
		t.Fatalf("valid email: %v", err)
	}
	if err := ValidateEmail("not-an-address"); err == nil {
		t.Fatalf("expected error for malformed email")
	}
	if err := ValidateEmail("a@b@c"); err == nil {
		t.Fatalf("expected error for double at-sign")
	}
}

package service

import (
	"strings"
	"testing"
)

func TestOptionalString(t *testing.T) {
	if got := OptionalString(""); got != nil {
		t.Errorf("OptionalString(\"\") = %q, want nil", *got)
	}

	got := OptionalString("Иван")
	if got == nil || *got != "Иван" {
		t.Errorf("OptionalString(\"Иван\") = %v", got)
	}
}

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := generateReferralCode()
		if err != nil {
			t.Fatalf("generateReferralCode() error: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("code %q has length %d, want 8", code, len(code))
		}
		if code != strings.ToLower(code) {
			t.Errorf("code %q is not lowercase", code)
		}
		seen[code] = true
	}

	if len(seen) < 90 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}

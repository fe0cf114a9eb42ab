package repository

import (
	"strings"
	"testing"
)

func TestIssueProducesWellFormedCodes(t *testing.T) {
	var issuer CodeIssuer
	for i := 0; i < 200; i++ {
		code, err := issuer.Issue()
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if len(code) != codeLength {
			t.Fatalf("expected %d characters, got %q", codeLength, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
		// The confusable characters must never appear.
		if strings.ContainsAny(code, "0O1I") {
			t.Fatalf("code %q contains a confusable character", code)
		}
	}
}

func TestIssueDrawsAreDistinct(t *testing.T) {
	var issuer CodeIssuer
	seen := make(map[string]struct{}, 200)
	for i := 0; i < 200; i++ {
		code, err := issuer.Issue()
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = struct{}{}
	}
}

func TestNormalizeCode(t *testing.T) {
	for _, input := range []string{"xy7k2q", "XY7K2Q", "Xy7k2Q", "  xy7k2q  "} {
		if got := NormalizeCode(input); got != "XY7K2Q" {
			t.Errorf("NormalizeCode(%q) = %q, expected XY7K2Q", input, got)
		}
	}
}

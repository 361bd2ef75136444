package challenge

import (
	"strings"
	"testing"
)

func TestNewSecret(t *testing.T) {
	seen := map[string]bool{}

	for range 256 {
		secret, err := newSecret(16)
		if err != nil {
			t.Fatal(err)
		}

		if len(secret) != 16 {
			t.Fatalf("wanted a 16 character secret but got %q", secret)
		}

		for _, r := range secret {
			if !strings.ContainsRune(secretAlphabet, r) {
				t.Fatalf("secret %q contains %q which is outside the alphabet", secret, r)
			}
		}

		if seen[secret] {
			t.Fatalf("secret %q was generated twice", secret)
		}
		seen[secret] = true
	}
}

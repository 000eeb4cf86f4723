package password

import (
	"strings"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name              string
		submitted, stored string
		want              bool
	}{
		{"exact match", "Secret@123", "Secret@123", true},
		{"case sensitive", "secret@123", "Secret@123", false},
		{"different length", "Secret", "Secret@123", false},
		{"both empty", "", "", true},
		{"empty submitted", "", "Secret@123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.submitted, tt.stored); got != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.submitted, tt.stored, got, tt.want)
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("token-a")
	h2 := HashToken("token-a")
	h3 := HashToken("token-b")

	if h1 != h2 {
		t.Error("hashing is not deterministic")
	}
	if h1 == h3 {
		t.Error("different tokens hash equal")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
}

func TestValidatePassword(t *testing.T) {
	if ValidatePassword("abc12") {
		t.Error("5 chars accepted")
	}
	if !ValidatePassword("abc123") {
		t.Error("6 chars rejected")
	}
}

func TestGenerateTemp(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p, err := GenerateTemp()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(p) != 12 {
			t.Errorf("length = %d, want 12", len(p))
		}
		for _, c := range p {
			if !strings.ContainsRune(tempPasswordChars, c) {
				t.Errorf("unexpected char %q", c)
			}
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Error("generator produced identical passwords")
	}
}

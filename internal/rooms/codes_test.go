package rooms

import (
	"strings"
	"testing"
)

func TestGenerateCode_Length(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != codeLength {
		t.Errorf("len = %d, want %d", len(code), codeLength)
	}
}

func TestGenerateCode_AlphabetOnly(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		for _, ch := range code {
			if !strings.ContainsRune(alphabet, ch) {
				t.Errorf("code %q contains %q outside alphabet", code, ch)
			}
		}
	}
}

func TestGenerateCode_NoAmbiguousCharacters(t *testing.T) {
	for _, ch := range "0O1IL" {
		if strings.ContainsRune(alphabet, ch) {
			t.Errorf("alphabet contains ambiguous character %q", ch)
		}
	}
}

func TestGenerateCode_MostlyUnique(t *testing.T) {
	seen := make(map[string]bool)
	dupes := 0
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if seen[code] {
			dupes++
		}
		seen[code] = true
	}
	if dupes > 2 {
		t.Errorf("too many duplicate codes: %d of 200", dupes)
	}
}

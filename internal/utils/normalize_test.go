package utils

import "testing"

func TestNormalizeUsername_LowercasesAndTrims(t *testing.T) {
	if got := NormalizeUsername("  JuanPerez "); got != "juanperez" {
		t.Fatalf("expected juanperez got %q", got)
	}
	if got := NormalizeUsername("oficina"); got != "oficina" {
		t.Fatalf("expected oficina got %q", got)
	}
}

func TestParseInputString_OnlyTrims(t *testing.T) {
	if got := ParseInputString("  Resina Epoxi  "); got != "Resina Epoxi" {
		t.Fatalf("expected inner casing kept, got %q", got)
	}
}

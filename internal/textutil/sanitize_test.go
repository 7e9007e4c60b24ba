package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SCHOTT", "schott"},
		{"Ohara 2024", "ohara_2024"},
		{"  hoya-e.v2 ", "hoya-e_v2"},
		{"__", "unknown"},
		{"", "unknown"},
		{"Cdgm¹", "cdgm"},
	}
	for _, tc := range tests {
		if got := SanitizeToken(tc.in); got != tc.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "yes", "no"); got != "yes" {
		t.Fatalf("Ternary(true) = %q", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Fatalf("Ternary(false) = %d", got)
	}
}

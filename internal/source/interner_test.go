package source

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"go-to", "goto"},
		{"GoTo", "goto"},
		{"go_to", "goto"},
		{"set", "set"},
		{"Display", "display"},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInternAliases(t *testing.T) {
	names := NewNames()
	a := names.Intern("go-to")
	b := names.Intern("goto")
	c := names.Intern("GO-TO")
	if a != b || b != c {
		t.Errorf("aliases interned to different ids: %d %d %d", a, b, c)
	}
	// first spelling wins for display
	if got := names.Display(a); got != "go-to" {
		t.Errorf("Display = %q, want %q", got, "go-to")
	}
	if names.Len() != 1 {
		t.Errorf("Len = %d, want 1", names.Len())
	}
}

func TestInternDistinct(t *testing.T) {
	names := NewNames()
	if names.Intern("set") == names.Intern("put") {
		t.Error("distinct names share an id")
	}
	if names.Display(NoNameID) != "" {
		t.Error("NoNameID should display empty")
	}
}

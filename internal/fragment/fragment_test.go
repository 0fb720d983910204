package fragment

import "testing"

func TestID(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Composing Styles", "composing-styles"},
		{"$as prop", "as-prop"},
		{"Getting Started", "getting-started"},
		{"API", "api"},
		{"useState()", "usestate"},
		{"Props & State", "props-state"},
		{"v2.0 Migration", "v2-0-migration"},
		{"  spaced  out  ", "spaced-out"},
		{"already-a-fragment", "already-a-fragment"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := ID(tt.input)
		if got != tt.want {
			t.Errorf("ID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIDIdempotent(t *testing.T) {
	inputs := []string{
		"Composing Styles",
		"$as prop",
		"What's New in v3?",
		"plain",
		"",
	}
	for _, s := range inputs {
		once := ID(s)
		twice := ID(once)
		if once != twice {
			t.Errorf("ID not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}

func TestHref(t *testing.T) {
	if got := Href("Composing Styles"); got != "#composing-styles" {
		t.Errorf("Href = %q, want %q", got, "#composing-styles")
	}
}

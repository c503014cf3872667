package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "About Us", "about-us"},
		{"year", "Durga Puja 2025", "durga-puja-2025"},
		{"punctuation", "Hello, World! How's it going?", "hello-world-hows-it-going"},
		{"symbols", "Rock & Roll @ the Arena", "rock-roll-the-arena"},
		{"accents", "Café Résumé Noël", "cafe-resume-noel"},
		{"tabs and newlines", "Line\tone\ntwo", "line-one-two"},
		{"leading and trailing", "  --Temple--  ", "temple"},
		{"existing hyphens", "pre--built---slug", "pre-built-slug"},
		{"bengali only", "দুর্গা পূজা", ""},
		{"mixed bengali", "পূজা Schedule 2025", "schedule-2025"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	for _, in := range []string{"Hello World", "Café Noir", "a--b"} {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestValid(t *testing.T) {
	tests := map[string]bool{
		"about-us":  true,
		"2025":      true,
		"About":     false,
		"-lead":     false,
		"trail-":    false,
		"double--x": false,
		"":          false,
		"পূজা":      false,
	}
	for in, want := range tests {
		if got := Valid(in); got != want {
			t.Errorf("Valid(%q): got %v, want %v", in, got, want)
		}
	}
}

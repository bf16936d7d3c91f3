package locale

import "testing"

func TestResolvePath(t *testing.T) {
	cases := []struct {
		name string
		path string
		want Locale
	}{
		{"english prefix", "/en/blog/hello", English},
		{"vietnamese prefix", "/vi/tin-tuc", Vietnamese},
		{"japanese prefix", "/ja", Japanese},
		{"japanese prefix trailing slash", "/ja/", Japanese},
		{"unsupported segment", "/fr/blog", Default},
		{"plain route", "/blog/hello", Default},
		{"root", "/", Default},
		{"empty", "", Default},
		{"uppercase segment", "/VI/anything", Vietnamese},
		{"locale-looking slug deeper in path", "/blog/vi-editor-guide", Default},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePath(tc.path); got != tc.want {
				t.Fatalf("ResolvePath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestResolveNeverErrors(t *testing.T) {
	for _, code := range []string{"", "  ", "EN", "ja ", "zz", "english"} {
		got := Resolve(code)
		if !IsSupported(string(got)) {
			t.Fatalf("Resolve(%q) produced unsupported locale %q", code, got)
		}
	}
	if Resolve("zz") != Default {
		t.Fatalf("unsupported code must resolve to default")
	}
}

func TestSupportedIsClosedSet(t *testing.T) {
	codes := Codes()
	if len(codes) != 3 {
		t.Fatalf("expected 3 supported locales, got %v", codes)
	}
	if codes[0] != string(Default) {
		t.Fatalf("expected default locale first, got %v", codes)
	}

	// Mutating the returned slice must not leak into the package state.
	codes[0] = "zz"
	if !IsSupported("en") {
		t.Fatalf("supported set was mutated through Codes()")
	}
}

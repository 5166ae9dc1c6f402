package utils

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("hola", 60); got != "hola" {
		t.Fatalf("short string should be untouched, got %q", got)
	}

	long := "esta es una consulta bastante larga que no cabe en el menu lateral de la aplicacion"
	got := Truncate(long, 60)
	if len([]rune(got)) != 63 {
		t.Fatalf("expected 60 runes plus ellipsis, got %d: %q", len([]rune(got)), got)
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"noticia":  "Noticia",
		"Noticia":  "Noticia",
		"":         "",
		"ñandú":    "Ñandú",
		"123 tres": "123 tres",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp("2024-01-15T12:30:45"); got != "2024/01/15 12:30" {
		t.Fatalf("unexpected format: %q", got)
	}

	// Unparseable input passes through untouched.
	if got := FormatTimestamp("ayer"); got != "ayer" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

package textutil

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello there", "Hello there"},
		{"empty", "", ""},
		{"html tags", "<i>Hello</i> <b>there</b>", "Hello there"},
		{"font tag", `<font color="#ffffff">Hi</font>`, "Hi"},
		{"ass overrides", `{\an8}{\i1}Hello{\i0}`, "Hello"},
		{"newline", "Hello\nthere", "Hellothere"},
		{"crlf", "Hello\r\nthere", "Hellothere"},
		{"ass hard break", `Hello\Nthere`, "Hellothere"},
		{"ass hard space", `Hello\hthere`, "Hello there"},
		{"surrounding space", "  Hi  ", "Hi"},
		{"decomposed accent", "Cafe\u0301", "Caf\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.in); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripLines(t *testing.T) {
	got := StripLines([]string{"<i>Hello</i>", "there"})
	if got != "Hellothere" {
		t.Fatalf("StripLines = %q", got)
	}
}

func TestCharCount(t *testing.T) {
	tests := map[string]int{
		"":            0,
		"Hello there": 11,
		"Café":        4,
		"日本語":         3,
	}
	for in, want := range tests {
		if got := CharCount(in); got != want {
			t.Errorf("CharCount(%q) = %d, want %d", in, got, want)
		}
	}
	if got := CharCount(Strip("Cafe\u0301")); got != 4 {
		t.Errorf("normalized count = %d, want 4", got)
	}
}

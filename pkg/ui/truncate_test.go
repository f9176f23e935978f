package ui

import (
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestTruncateRunesHelper_WidthSafe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		suffix   string
		want     string
	}{
		{name: "zero max", input: "hello", maxWidth: 0, suffix: "…", want: ""},
		{name: "negative max", input: "hello", maxWidth: -1, suffix: "…", want: ""},
		{name: "fits", input: "hello", maxWidth: 10, suffix: "…", want: "hello"},
		{name: "ascii cut", input: "hello world", maxWidth: 8, suffix: "…", want: "hello w…"},
		{name: "wide runes fit", input: "こんにちは", maxWidth: 10, suffix: "…", want: "こんにちは"},
		{name: "wide runes cut on cell boundary", input: "日本語テキスト", maxWidth: 6, suffix: "…", want: "日本…"},
		{name: "emoji cut", input: "a🙂b🙂c", maxWidth: 4, suffix: "…", want: "a🙂…"},
		{name: "suffix wider than max", input: "hello world", maxWidth: 2, suffix: "...", want: ".."},
		{name: "empty suffix", input: "hello world", maxWidth: 5, suffix: "", want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunesHelper(tt.input, tt.maxWidth, tt.suffix)
			if got != tt.want {
				t.Fatalf("truncateRunesHelper(%q, %d, %q) = %q; want %q", tt.input, tt.maxWidth, tt.suffix, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncateRunesHelper output is not valid UTF-8: %q", got)
			}
			if tt.maxWidth > 0 && runewidth.StringWidth(got) > tt.maxWidth {
				t.Fatalf("truncateRunesHelper output is %d cells wide; max %d", runewidth.StringWidth(got), tt.maxWidth)
			}
		})
	}
}

func TestTruncateUsesEllipsis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "fits", input: "hi", max: 5, want: "hi"},
		{name: "exact", input: "hello", max: 5, want: "hello"},
		{name: "cut", input: "hello", max: 3, want: "he…"},
		{name: "zero", input: "hello", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q; want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{name: "pads short", input: "ab", width: 5, want: "ab   "},
		{name: "leaves long alone", input: "hello", width: 3, want: "hello"},
		{name: "exact width", input: "abc", width: 3, want: "abc"},
		{name: "empty input", input: "", width: 3, want: "   "},
		{name: "counts runes not bytes", input: "héllo", width: 7, want: "héllo  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.width); got != tt.want {
				t.Fatalf("padRight(%q, %d) = %q; want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

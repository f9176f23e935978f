package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/guildview/pkg/directory"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
// Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		// Even suffix is too wide, truncate suffix
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	targetWidth := maxWidth - suffixWidth
	return runewidth.Truncate(s, targetWidth, "") + suffix
}

// padRight pads string s with spaces on the right to length width
func padRight(s string, width int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount >= width {
		return s
	}
	return s + strings.Repeat(" ", width-runeCount)
}

// truncate truncates string s to maxRunes
func truncate(s string, maxRunes int) string {
	return truncateRunesHelper(s, maxRunes, "…")
}

// FormatExperienceRange renders an experience date range like "2021 – 2023".
// An empty start gives just the end; an empty end means the role is current.
func FormatExperienceRange(e directory.Experience) string {
	switch {
	case e.Start == "" && e.End == "":
		return ""
	case e.Start == "":
		return e.End
	case e.End == "":
		return e.Start + " – now"
	default:
		return e.Start + " – " + e.End
	}
}

// FormatMediaCounts summarizes a project's media for the detail header,
// e.g. "2 images · 1 video". Empty media gives "".
func FormatMediaCounts(images, videos directory.MediaList) string {
	var parts []string
	if n := len(images); n == 1 {
		parts = append(parts, "1 image")
	} else if n > 1 {
		parts = append(parts, itoa(n)+" images")
	}
	if n := len(videos); n == 1 {
		parts = append(parts, "1 video")
	} else if n > 1 {
		parts = append(parts, itoa(n)+" videos")
	}
	return strings.Join(parts, " · ")
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// itoa is a simple int to string helper
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

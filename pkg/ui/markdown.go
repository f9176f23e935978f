package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders profile bios and project descriptions for the
// detail viewport. It wraps a glamour TermRenderer and degrades to plain
// text when the renderer cannot be built (unusual TERM setups), so detail
// views never go blank over bad markdown.
type MarkdownRenderer struct {
	tr    *glamour.TermRenderer
	width int
}

// NewMarkdownRenderer returns a renderer wrapping at the given width.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	if width < 20 {
		width = 20
	}
	tr, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	return &MarkdownRenderer{tr: tr, width: width}
}

// Width returns the wrap width the renderer was built for.
func (r *MarkdownRenderer) Width() int {
	if r == nil {
		return 0
	}
	return r.width
}

// Render converts markdown to styled terminal output. Blank input renders
// to "", and any glamour failure falls back to the raw text.
func (r *MarkdownRenderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if r == nil || r.tr == nil {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return compressBlankLines(strings.TrimRight(out, "\n"))
}

// compressBlankLines squeezes runs of 3+ blank lines down to 2. Glamour
// sometimes pads headings with excessive whitespace.
func compressBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks <= 2 {
				out = append(out, line)
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

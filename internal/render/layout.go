package render

import "strings"

// Layout geometry, mirrored by both export formats that need it. The
// PDF page is addressed top-down; a line is drawn every lineHeight
// points from the top margin until the cursor passes the bottom margin.
const (
	maxLineChars = 60
	leftMargin   = 40.0
	topMargin    = 42.0
	bottomMargin = 40.0
	lineHeight   = 24.0
	fontSize     = 18.0
)

// Layout turns a text blob into physical lines ready for drawing: each
// logical line (split on "\n") is shaped exactly once, then greedily
// wrapped to maxLineChars. Whitespace-only logical lines produce no
// physical line, so they advance nothing on the page.
func Layout(text string, shaper func(string) string) []string {
	if shaper == nil {
		shaper = func(s string) string { return s }
	}

	var physical []string
	for _, logical := range strings.Split(text, "\n") {
		shaped := shaper(logical)
		physical = append(physical, wrapLine(shaped, maxLineChars)...)
	}
	return physical
}

// wrapLine greedily packs words into lines of at most width runes.
// Words longer than the width are hard-split.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	var (
		wrapped []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			wrapped = append(wrapped, string(current))
			current = current[:0]
		}
	}

	for _, word := range words {
		runes := []rune(word)
		for len(runes) > width {
			flush()
			wrapped = append(wrapped, string(runes[:width]))
			runes = runes[width:]
		}
		switch {
		case len(current) == 0:
			current = append(current, runes...)
		case len(current)+1+len(runes) <= width:
			current = append(current, ' ')
			current = append(current, runes...)
		default:
			flush()
			current = append(current, runes...)
		}
	}
	flush()
	return wrapped
}

// linesPerPage is how many physical lines fit between the margins.
func linesPerPage(pageHeight float64) int {
	usable := pageHeight - topMargin - bottomMargin
	if usable < lineHeight {
		return 1
	}
	return int(usable/lineHeight) + 1
}

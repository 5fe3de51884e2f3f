// Package shape prepares right-to-left text for rendering surfaces that
// only draw left-to-right: Arabic letters are joined into their
// contextual glyph forms, then mixed-direction runs are reordered into
// visual order.
package shape

import (
	"strings"

	"github.com/abdullahdiaa/garabic"
	"golang.org/x/text/unicode/bidi"
)

// Line returns the visually-ordered form of one logical line. Shaping is
// best effort: any failure returns the input unchanged, since a raw line
// in an export beats a failed export.
func Line(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	shaped := reshape(line)
	visual, ok := reorder(shaped)
	if !ok {
		return line
	}
	return visual
}

func reshape(line string) (out string) {
	defer func() {
		if recover() != nil {
			out = line
		}
	}()
	return garabic.Shape(line)
}

func reorder(line string) (visual string, ok bool) {
	defer func() {
		if recover() != nil {
			visual, ok = "", false
		}
	}()

	var p bidi.Paragraph
	if _, err := p.SetString(line); err != nil {
		return "", false
	}
	order, err := p.Order()
	if err != nil {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(bidi.ReverseString(run.String()))
			continue
		}
		b.WriteString(run.String())
	}
	return b.String(), true
}

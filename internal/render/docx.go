package render

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// DOCX renders the text as a document with one paragraph per input line,
// in order. No reshaping happens here: the word-processor's own engine
// handles bidi layout.
func DOCX(text string) ([]byte, error) {
	w := docx.New().WithDefaultTheme()
	for _, line := range strings.Split(text, "\n") {
		paragraph := w.AddParagraph()
		if line != "" {
			paragraph.AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

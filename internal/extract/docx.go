package extract

import (
	"bytes"
	"strings"

	docx "github.com/fumiama/go-docx"

	"lughat.dev/lughat/internal/apperr"
)

// docxText emits one line per paragraph, in document order. Empty
// paragraphs still emit their line break.
func docxText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", apperr.UnsupportedFormat("not a readable DOCX file: %v", r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.UnsupportedFormat("not a readable DOCX file: %v", err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		paragraph, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		b.WriteString(paragraphText(paragraph))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func paragraphText(paragraph *docx.Paragraph) string {
	var b strings.Builder
	for _, child := range paragraph.Children {
		switch node := child.(type) {
		case *docx.Run:
			b.WriteString(runText(node))
		case *docx.Hyperlink:
			b.WriteString(runText(&node.Run))
		}
	}
	return b.String()
}

func runText(run *docx.Run) string {
	var b strings.Builder
	for _, child := range run.Children {
		switch node := child.(type) {
		case *docx.Text:
			b.WriteString(node.Text)
		case *docx.Tab:
			b.WriteString("\t")
		}
	}
	return b.String()
}

package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"lughat.dev/lughat/internal/apperr"
)

// pdfText concatenates the plain text of every page, one "\n" between
// pages that yielded text. Pages with no extractable text (scanned
// images) contribute nothing, not even a blank line.
func pdfText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", apperr.UnsupportedFormat("not a readable PDF file: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.UnsupportedFormat("not a readable PDF file: %v", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", apperr.UnsupportedFormat("extract text from PDF page %d: %v", i, err)
		}
		if pageText == "" {
			continue
		}
		pages = append(pages, pageText)
	}
	return joinPages(pages), nil
}

// joinPages joins non-empty page texts with single line breaks, matching
// the per-page concatenation contract.
func joinPages(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, page := range pages {
		if page == "" {
			continue
		}
		nonEmpty = append(nonEmpty, page)
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return strings.Join(nonEmpty, "\n") + "\n"
}

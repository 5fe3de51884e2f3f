package extract

import (
	"path/filepath"
	"strings"

	"lughat.dev/lughat/internal/apperr"
)

// Format tags the document formats the extractor understands. It is
// resolved once at the upload boundary and passed explicitly from there.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatDOCX
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// ResolveFormat maps a filename extension to a Format. Anything other
// than .pdf or .docx is an unsupported-format error.
func ResolveFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return FormatUnknown, apperr.UnsupportedFormat("unsupported file format: %s", filename)
	}
}

// Text extracts plain text from document bytes in the given format.
// A result that is only whitespace is an empty-content error.
func Text(data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = pdfText(data)
	case FormatDOCX:
		text, err = docxText(data)
	default:
		return "", apperr.UnsupportedFormat("unsupported document format %q", format)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", apperr.EmptyContent("no text found in %s document", format)
	}
	return text, nil
}

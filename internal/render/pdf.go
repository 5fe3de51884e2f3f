package render

import (
	"fmt"

	"github.com/signintech/gopdf"

	"lughat.dev/lughat/internal/shape"
)

const pdfFontName = "export"

// PDFRenderer renders text blobs as paged PDFs. It is a pure function of
// the input text plus this static configuration, so one renderer can be
// shared across concurrent requests.
type PDFRenderer struct {
	// FontPath points at a TTF able to draw the target script (the
	// default deployment ships the Amiri face for Arabic). The built-in
	// PDF base fonts are Latin-only, so a real font file is required.
	FontPath string

	// Shaper prepares one logical line for drawing. Defaults to
	// shape.Line.
	Shaper func(string) string
}

func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{
		FontPath: fontPath,
		Shaper:   shape.Line,
	}
}

// Render lays the text out per Layout and draws it page by page.
func (r *PDFRenderer) Render(text string) ([]byte, error) {
	shaper := r.Shaper
	if shaper == nil {
		shaper = shape.Line
	}
	lines := Layout(text, shaper)

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFont(pdfFontName, r.FontPath); err != nil {
		return nil, fmt.Errorf("load font %s: %w", r.FontPath, err)
	}
	if err := pdf.SetFont(pdfFontName, "", fontSize); err != nil {
		return nil, fmt.Errorf("select font: %w", err)
	}

	perPage := linesPerPage(gopdf.PageSizeA4.H)
	pdf.AddPage()
	y := topMargin
	for i, line := range lines {
		if i > 0 && i%perPage == 0 {
			pdf.AddPage()
			y = topMargin
		}
		pdf.SetXY(leftMargin, y)
		if err := pdf.Cell(nil, line); err != nil {
			return nil, fmt.Errorf("draw line %d: %w", i+1, err)
		}
		y += lineHeight
	}

	return pdf.GetBytesPdf(), nil
}

package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"carbontrack/internal/carbon"
)

const (
	pdfFilename    = "carbon-footprint-report.pdf"
	pdfContentType = "application/pdf"

	marginLeft   = 20.0
	valueColumn  = 90.0
	ruleRight    = 180.0
	pageTop      = 20.0
	pageBreakAt  = 270.0
	textWidth    = ruleRight - marginLeft
	rowSpacing   = 10.0
	bulletIndent = 4.0
	bulletLine   = 7.0
)

// PDFRenderer renders A4 portrait PDF reports.
type PDFRenderer struct {
	// Title is printed at the top of the first page.
	Title string
}

// NewPDFRenderer creates a PDFRenderer with the default title.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Title: "Carbon Footprint Report"}
}

// pdfWriter tracks the vertical cursor and breaks pages past pageBreakAt.
type pdfWriter struct {
	pdf *fpdf.Fpdf
	y   float64
}

func (w *pdfWriter) font(style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
}

func (w *pdfWriter) text(x float64, s string) {
	w.pdf.Text(x, w.y, s)
}

func (w *pdfWriter) advance(dy float64) {
	w.y += dy
	if w.y > pageBreakAt {
		w.pdf.AddPage()
		w.y = pageTop
	}
}

func (p *PDFRenderer) Render(snap carbon.Snapshot) (*Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(p.Title, false)
	pdf.SetCreator("carbontrack", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, y: pageTop}

	w.font("B", 20)
	w.text(marginLeft, p.Title)
	w.y = 30

	w.font("", 10)
	w.text(marginLeft, "Generated on: "+snap.GeneratedAt.Format("02/01/2006"))
	w.y = 40

	w.font("B", 14)
	w.text(marginLeft, "Emissions Summary")
	w.y = 50

	w.font("", 12)
	w.text(marginLeft, fmt.Sprintf("Total Emissions: %s kg CO2e", FormatKg(snap.Total)))
	w.y = 60
	w.text(marginLeft, fmt.Sprintf("Goal: %s kg CO2e", FormatKg(snap.Goal)))
	w.y = 75

	w.font("B", 14)
	w.text(marginLeft, "Breakdown by Category")
	w.y = 85

	w.font("B", 10)
	w.text(marginLeft, "Category")
	w.text(valueColumn, "Emissions (kg CO2e)")
	w.advance(5)
	pdf.Line(marginLeft, w.y, ruleRight, w.y)
	w.advance(rowSpacing)

	w.font("", 10)
	for _, r := range snap.Records {
		w.text(marginLeft, r.Name)
		w.text(valueColumn, FormatKg(r.Emissions))
		w.advance(rowSpacing)
	}

	if len(snap.Recommendations) > 0 {
		w.advance(rowSpacing)
		w.font("B", 14)
		w.text(marginLeft, "Recommendations")
		w.advance(rowSpacing)

		w.font("", 10)
		for _, rec := range snap.Recommendations {
			lines := pdf.SplitText(rec.Text, textWidth-bulletIndent)
			for i, line := range lines {
				if i == 0 {
					w.text(marginLeft, "-")
				}
				w.text(marginLeft+bulletIndent, line)
				w.advance(bulletLine)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &Document{
		Filename:    pdfFilename,
		ContentType: pdfContentType,
		Content:     buf.Bytes(),
		Pages:       pdf.PageCount(),
	}, nil
}

// Package report renders emission snapshots into downloadable documents.
package report

import (
	"math"

	"github.com/shopspring/decimal"

	"carbontrack/internal/carbon"
)

// Document is a rendered report ready to be downloaded or attached.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
	Pages       int
}

// Renderer turns a snapshot into a Document.
type Renderer interface {
	Render(snap carbon.Snapshot) (*Document, error)
}

// FormatKg rounds kg to one decimal place for display. Non-finite values
// render as "n/a".
func FormatKg(kg float64) string {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(kg).Round(1).StringFixed(1)
}

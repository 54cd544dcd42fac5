package report

import (
	"bytes"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrack/internal/carbon"
)

func snapshotFor(t *testing.T, entries map[string]float64) carbon.Snapshot {
	t.Helper()
	l := carbon.NewDefaultLedger()
	for category, amount := range entries {
		l.Upsert(category, amount)
	}
	return carbon.TakeSnapshot(l, 250, time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC))
}

func TestFormatKg(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{2.4, "2.4"},
		{2.45, "2.5"},
		{12.04, "12.0"},
		{1000, "1000.0"},
		{-3.26, "-3.3"},
		{math.Inf(1), "n/a"},
		{math.Inf(-1), "n/a"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatKg(tt.in))
		})
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	snap := snapshotFor(t, map[string]float64{carbon.Food: 10, carbon.Transportation: 20})

	doc, err := NewPDFRenderer().Render(snap)
	require.NoError(t, err)

	assert.Equal(t, "carbon-footprint-report.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
	assert.Equal(t, 1, doc.Pages)
}

func TestPDFRenderer_EmptySnapshot(t *testing.T) {
	snap := carbon.TakeSnapshot(carbon.NewLedger(nil), 250, time.Now())

	doc, err := NewPDFRenderer().Render(snap)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
}

func TestPDFRenderer_PaginatesLongRecommendations(t *testing.T) {
	snap := snapshotFor(t, map[string]float64{carbon.Waste: 4})
	for i := 0; i < 40; i++ {
		snap.Recommendations = append(snap.Recommendations, carbon.Advice{
			Text: fmt.Sprintf("Recommendation number %d for reducing your footprint.", i),
		})
	}

	doc, err := NewPDFRenderer().Render(snap)
	require.NoError(t, err)
	assert.Greater(t, doc.Pages, 1)
}

func TestPDFRenderer_PaginatesManyRecords(t *testing.T) {
	records := make([]carbon.Record, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, carbon.Record{Category: fmt.Sprintf("custom-%d", i), Name: fmt.Sprintf("Custom %d", i), Emissions: float64(i)})
	}
	snap := carbon.TakeSnapshot(carbon.NewLedger(records), 250, time.Now())

	doc, err := NewPDFRenderer().Render(snap)
	require.NoError(t, err)
	assert.Greater(t, doc.Pages, 1)
}

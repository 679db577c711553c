package service

import (
	"time"

	"github.com/yourusername/pool-portal/internal/models"
)

// TrendPoint is the state of the history after the Nth draw: cumulative
// counts per category and each category's share of all draws so far.
type TrendPoint struct {
	Record  int                         `json:"record"`
	DrawnAt time.Time                   `json:"drawn_at"`
	Counts  map[models.Category]int     `json:"counts"`
	Shares  map[models.Category]float64 `json:"shares"`
}

// TrendSeries is the step chart data for the dashboard: one point per draw
// in chronological order.
type TrendSeries struct {
	Categories []models.Category `json:"categories"`
	Points     []TrendPoint      `json:"points"`
}

// ComputeTrends walks the history oldest first and accumulates per-category
// counts and shares. Draws outside the configured set still advance the
// record index but carry no count, so the series lines up with the stored
// history row for row.
func ComputeTrends(records []*models.OutcomeRecord, categories []models.Category) *TrendSeries {
	sorted := make([]*models.OutcomeRecord, len(records))
	copy(sorted, records)
	models.SortOutcomesByDrawTime(sorted)

	series := &TrendSeries{
		Categories: categories,
		Points:     make([]TrendPoint, 0, len(sorted)),
	}

	running := make(map[models.Category]int, len(categories))
	total := 0
	for i, record := range sorted {
		if models.ContainsCategory(categories, record.Result) {
			running[record.Result]++
			total++
		}

		point := TrendPoint{
			Record:  i + 1,
			DrawnAt: record.DrawnAt,
			Counts:  make(map[models.Category]int, len(categories)),
			Shares:  make(map[models.Category]float64, len(categories)),
		}
		for _, c := range categories {
			point.Counts[c] = running[c]
			if total > 0 {
				point.Shares[c] = float64(running[c]) / float64(total)
			}
		}
		series.Points = append(series.Points, point)
	}

	return series
}

package engine

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"gdpseries/internal/models"
)

// Summarize describes the year-over-year growth of one region between
// q.StartYear and q.EndYear. q.Regions is ignored. Non-finite growth values
// are left out of the statistics. It reports false when the region has no
// rows in the window.
func (d *Dataset) Summarize(q Query, region string) (models.GrowthSummary, bool) {
	seeded := q
	seeded.Regions = OnlyRegions(region)
	seeded.StartYear = q.StartYear - 1
	rows := regionYears(d.Query(seeded))

	var window []models.Observation
	for _, r := range rows {
		if r.Year >= q.StartYear {
			window = append(window, r)
		}
	}
	if len(window) == 0 {
		return models.GrowthSummary{}, false
	}

	sum := models.GrowthSummary{
		Region:    region,
		StartYear: window[0].Year,
		EndYear:   window[len(window)-1].Year,
		CAGR:      cagr(window[0], window[len(window)-1]),
	}

	xs := make([]float64, 0, len(rows))
	for _, g := range YoYGrowth(rows) {
		if !math.IsNaN(g.GrowthPercent) && !math.IsInf(g.GrowthPercent, 0) {
			xs = append(xs, g.GrowthPercent)
		}
	}
	sum.Samples = len(xs)
	if len(xs) == 0 {
		return sum, true
	}

	s := (&stats.Sample{Xs: xs}).Sort()
	sum.Mean = s.Mean()
	sum.Median = s.Quantile(0.5)
	sum.Min, sum.Max = s.Bounds()
	if len(xs) > 1 {
		sum.StdDev = s.StdDev()
	}
	return sum, true
}

// cagr is the compound annual growth rate in percent between two rows. It is
// 0 when the rows share a year or either value is not positive.
func cagr(first, last models.Observation) float64 {
	years := last.Year - first.Year
	if years <= 0 || first.Value <= 0 || last.Value <= 0 {
		return 0
	}
	return (math.Pow(last.Value/first.Value, 1/float64(years)) - 1) * 100
}

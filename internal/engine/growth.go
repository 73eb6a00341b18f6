package engine

import (
	"sort"

	"gdpseries/internal/models"
)

// percentChange returns (to-from)/from*100. A zero baseline yields ±Inf or
// NaN, which is passed on unchanged.
func percentChange(from, to float64) float64 {
	return (to - from) / from * 100
}

// WindowGrowth computes the growth of region between startYear and endYear.
// It reports false unless obs holds exactly one row for the region at each of
// the two years.
func WindowGrowth(obs []models.Observation, region string, startYear, endYear int) (models.WindowGrowth, bool) {
	var first, last models.Observation
	var nFirst, nLast int
	for _, o := range obs {
		if o.Region != region {
			continue
		}
		if o.Year == startYear {
			first = o
			nFirst++
		}
		if o.Year == endYear {
			last = o
			nLast++
		}
	}
	if nFirst != 1 || nLast != 1 {
		return models.WindowGrowth{}, false
	}
	return models.WindowGrowth{
		Region:         region,
		ReferenceValue: first.Value,
		TargetValue:    last.Value,
		GrowthPercent:  percentChange(first.Value, last.Value),
	}, true
}

// YoYGrowth turns one region's year-ordered rows into growth against the
// previous row. The first row only seeds the sequence, so the result has
// len(obs)-1 entries.
func YoYGrowth(obs []models.Observation) []models.YearGrowth {
	if len(obs) < 2 {
		return []models.YearGrowth{}
	}
	out := make([]models.YearGrowth, 0, len(obs)-1)
	for i := 1; i < len(obs); i++ {
		prev, curr := obs[i-1], obs[i]
		out = append(out, models.YearGrowth{
			Region:        curr.Region,
			Year:          curr.Year,
			GrowthPercent: percentChange(prev.Value, curr.Value),
		})
	}
	return out
}

// GrowthTable computes window growth for every region that has both end
// points (dumbbell chart data).
func (d *Dataset) GrowthTable(q Query, key SortKey) []models.WindowGrowth {
	var ends []models.Observation
	for _, o := range d.Query(q) {
		if o.Year == q.StartYear || o.Year == q.EndYear {
			ends = append(ends, o)
		}
	}

	order, groups := groupByRegion(ends)
	out := make([]models.WindowGrowth, 0, len(order))
	for _, region := range order {
		if g, ok := WindowGrowth(groups[region], region, q.StartYear, q.EndYear); ok {
			out = append(out, g)
		}
	}
	return Sort(out, key)
}

// regionYears returns the region's rows ascending by year.
func regionYears(rows []models.Observation) []models.Observation {
	out := make([]models.Observation, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// YoYMatrix computes year-over-year growth for every region from StartYear to
// EndYear (heatmap data). The year before StartYear is read to seed the first
// cell.
func (d *Dataset) YoYMatrix(q Query) models.YoYMatrix {
	seeded := q
	seeded.StartYear = q.StartYear - 1

	order, groups := groupByRegion(d.Query(seeded))
	m := models.YoYMatrix{Years: []int{}, Regions: []string{}, Cells: []models.YearGrowth{}}
	years := make(map[int]struct{})
	for _, region := range order {
		cells := YoYGrowth(regionYears(groups[region]))
		if len(cells) == 0 {
			continue
		}
		m.Regions = append(m.Regions, region)
		for _, c := range cells {
			years[c.Year] = struct{}{}
		}
		m.Cells = append(m.Cells, cells...)
	}
	for y := range years {
		m.Years = append(m.Years, y)
	}
	sort.Ints(m.Years)
	sort.Strings(m.Regions)
	return m
}

// SeriesByRegion groups a query into per-region time series, regions in
// first-seen order and points ascending by year (small multiples).
func (d *Dataset) SeriesByRegion(q Query) []models.RegionSeries {
	order, groups := groupByRegion(d.Query(q))
	out := make([]models.RegionSeries, 0, len(order))
	for _, region := range order {
		rows := regionYears(groups[region])
		s := models.RegionSeries{Region: region, Points: make([]models.SeriesPoint, len(rows))}
		for i, r := range rows {
			s.Points[i] = models.SeriesPoint{Year: r.Year, Value: r.Value}
		}
		out = append(out, s)
	}
	return out
}

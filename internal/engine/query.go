package engine

import "gdpseries/internal/models"

type regionMode int

const (
	regionsUnset regionMode = iota
	regionsAll
	regionsOnly
	regionsExcept
)

// AggregateRegions are the national and island totals published alongside
// the regions.
var AggregateRegions = []string{"New Zealand", "Total North Island", "Total South Island"}

// RegionFilter selects regions. The zero value is unset and, like
// AllRegions, lets every region through. OnlyRegions with no names lets
// nothing through.
type RegionFilter struct {
	mode  regionMode
	names map[string]struct{}
}

func AllRegions() RegionFilter {
	return RegionFilter{mode: regionsAll}
}

func OnlyRegions(names ...string) RegionFilter {
	return RegionFilter{mode: regionsOnly, names: nameSet(names)}
}

func ExceptRegions(names ...string) RegionFilter {
	return RegionFilter{mode: regionsExcept, names: nameSet(names)}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// IsSet reports whether the filter was given explicitly.
func (f RegionFilter) IsSet() bool { return f.mode != regionsUnset }

// Allows reports whether region passes the filter. Matching is exact and
// case-sensitive.
func (f RegionFilter) Allows(region string) bool {
	switch f.mode {
	case regionsOnly:
		_, ok := f.names[region]
		return ok
	case regionsExcept:
		_, ok := f.names[region]
		return !ok
	default:
		return true
	}
}

// Query selects observations of one metric over an inclusive year range.
type Query struct {
	Metric    string
	Regions   RegionFilter
	StartYear int
	EndYear   int
}

// Query returns the matching observations in source order. The result is a
// new slice; an unknown metric gives an empty one.
func (d *Dataset) Query(q Query) []models.Observation {
	out := make([]models.Observation, 0)
	m, ok := d.store.mask(q)
	if !ok {
		return out
	}
	for i := 0; i < d.store.Len(); i++ {
		if m.keep(d.store, i) {
			out = append(out, d.store.Row(i))
		}
	}
	return out
}

// Snapshot returns one year of a metric, ordered by key (bar chart data).
func (d *Dataset) Snapshot(metric string, regions RegionFilter, year int, key SortKey) []models.Observation {
	rows := d.Query(Query{Metric: metric, Regions: regions, StartYear: year, EndYear: year})
	return Sort(rows, key)
}

// groupByRegion splits rows by region, keeping regions in first-seen order.
func groupByRegion(rows []models.Observation) ([]string, map[string][]models.Observation) {
	var order []string
	groups := make(map[string][]models.Observation)
	for _, r := range rows {
		if _, ok := groups[r.Region]; !ok {
			order = append(order, r.Region)
		}
		groups[r.Region] = append(groups[r.Region], r)
	}
	return order, groups
}

package engine

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names an ordering. Unrecognized keys leave the order unchanged.
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortValueDesc    SortKey = "gdp-desc"
	SortValueAsc     SortKey = "gdp-asc"
	SortGrowthDesc   SortKey = "growth-desc"
	SortGrowthAsc    SortKey = "growth-asc"
)

// Rankable is anything Sort can order.
//
// Observations report a growth of 0, so the growth keys keep them in their
// input order. Growth keys are meant for growth records.
type Rankable interface {
	RegionName() string
	Magnitude() float64
	Growth() float64
}

// Sort returns a stably ordered copy of items. The input is never modified.
func Sort[T Rankable](items []T, key SortKey) []T {
	out := make([]T, len(items))
	copy(out, items)

	switch key {
	case SortAlphabetical:
		col := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].RegionName(), out[j].RegionName()) < 0
		})
	case SortValueDesc, SortValueAsc:
		desc := key == SortValueDesc
		sort.SliceStable(out, func(i, j int) bool {
			return before(out[i].Magnitude(), out[j].Magnitude(), desc)
		})
	case SortGrowthDesc, SortGrowthAsc:
		desc := key == SortGrowthDesc
		sort.SliceStable(out, func(i, j int) bool {
			return before(out[i].Growth(), out[j].Growth(), desc)
		})
	}
	return out
}

// before orders floats ascending or descending with NaN always last.
func before(a, b float64, desc bool) bool {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	if an || bn {
		return !an && bn
	}
	if desc {
		return a > b
	}
	return a < b
}

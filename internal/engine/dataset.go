package engine

import (
	"maps"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gdpseries/internal/models"
)

// Dataset is an immutable, loaded set of observations. Every method returns
// freshly allocated slices, so callers may reorder results freely.
type Dataset struct {
	source   string
	store    *ColumnStore
	stats    models.LoadStats
	loadedAt time.Time
}

// NewDataset builds a Dataset from already parsed observations.
func NewDataset(source string, obs []models.Observation) *Dataset {
	b := newStoreBuilder(len(obs))
	for _, o := range obs {
		b.add(o)
	}
	return &Dataset{
		source:   source,
		store:    b.done(),
		stats:    models.LoadStats{Source: source, Rows: len(obs), Kept: len(obs), Discarded: map[string]int{}},
		loadedAt: time.Now(),
	}
}

func (d *Dataset) Source() string      { return d.source }
func (d *Dataset) Len() int            { return d.store.Len() }
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Stats returns a copy of the load statistics.
func (d *Dataset) Stats() models.LoadStats {
	s := d.stats
	s.Discarded = maps.Clone(d.stats.Discarded)
	return s
}

// Observations returns every row in source order.
func (d *Dataset) Observations() []models.Observation {
	out := make([]models.Observation, d.store.Len())
	for i := range out {
		out[i] = d.store.Row(i)
	}
	return out
}

// Regions returns the distinct region labels in the same order as
// SortAlphabetical.
func (d *Dataset) Regions() []string {
	out := make([]string, len(d.store.RegionDict))
	copy(out, d.store.RegionDict)
	collate.New(language.English).SortStrings(out)
	return out
}

// Years returns the distinct years, ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int32]struct{})
	for _, y := range d.store.Years {
		seen[y] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, int(y))
	}
	sort.Ints(out)
	return out
}

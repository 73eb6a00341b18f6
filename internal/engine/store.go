package engine

import "gdpseries/internal/models"

// ColumnStore holds observations in Struct-of-Arrays format
type ColumnStore struct {
	// Data Columns (Flat Arrays)
	Years  []int32
	Values []float64

	// Dictionary Encoded IDs (0..N)
	RegionIDs []int32
	GroupIDs  []int32
	MetricIDs []int32

	// Dictionaries (ID -> String)
	RegionDict []string
	GroupDict  []string
	MetricDict []string
}

// dict assigns dense ids to strings in first-seen order.
type dict struct {
	ids  map[string]int32
	list []string
}

func newDict() *dict {
	return &dict{ids: make(map[string]int32)}
}

func (d *dict) id(s string) int32 {
	if id, ok := d.ids[s]; ok {
		return id
	}
	id := int32(len(d.list))
	d.list = append(d.list, s)
	d.ids[s] = id
	return id
}

// storeBuilder appends observations and encodes the categorical columns.
type storeBuilder struct {
	cs      *ColumnStore
	regions *dict
	groups  *dict
	metrics *dict
}

func newStoreBuilder(sizeHint int) *storeBuilder {
	return &storeBuilder{
		cs: &ColumnStore{
			Years:     make([]int32, 0, sizeHint),
			Values:    make([]float64, 0, sizeHint),
			RegionIDs: make([]int32, 0, sizeHint),
			GroupIDs:  make([]int32, 0, sizeHint),
			MetricIDs: make([]int32, 0, sizeHint),
		},
		regions: newDict(),
		groups:  newDict(),
		metrics: newDict(),
	}
}

func (b *storeBuilder) add(o models.Observation) {
	cs := b.cs
	cs.Years = append(cs.Years, int32(o.Year))
	cs.Values = append(cs.Values, o.Value)
	cs.RegionIDs = append(cs.RegionIDs, b.regions.id(o.Region))
	cs.GroupIDs = append(cs.GroupIDs, b.groups.id(o.Group))
	cs.MetricIDs = append(cs.MetricIDs, b.metrics.id(o.SeriesMetric))
}

func (b *storeBuilder) done() *ColumnStore {
	b.cs.RegionDict = b.regions.list
	b.cs.GroupDict = b.groups.list
	b.cs.MetricDict = b.metrics.list
	return b.cs
}

// Len returns the number of rows.
func (cs *ColumnStore) Len() int { return len(cs.Years) }

// Row materializes row i.
func (cs *ColumnStore) Row(i int) models.Observation {
	return models.Observation{
		Year:         int(cs.Years[i]),
		Region:       cs.RegionDict[cs.RegionIDs[i]],
		Group:        cs.GroupDict[cs.GroupIDs[i]],
		SeriesMetric: cs.MetricDict[cs.MetricIDs[i]],
		Value:        cs.Values[i],
	}
}

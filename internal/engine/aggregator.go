package engine

import (
	"runtime"
	"sort"
	"sync"

	"gdpseries/internal/models"
)

// rowMask precomputes the per-dictionary checks of a Query so the hot loop
// only indexes slices.
type rowMask struct {
	region []bool
	group  []bool
	metric []bool
	start  int32
	end    int32
}

func (cs *ColumnStore) mask(q Query) (rowMask, bool) {
	group, subMetric, ok := ParseMetric(q.Metric).labels()
	if !ok {
		return rowMask{}, false
	}
	m := rowMask{
		region: make([]bool, len(cs.RegionDict)),
		group:  make([]bool, len(cs.GroupDict)),
		metric: make([]bool, len(cs.MetricDict)),
		start:  int32(q.StartYear),
		end:    int32(q.EndYear),
	}
	for id, name := range cs.RegionDict {
		m.region[id] = q.Regions.Allows(name)
	}
	for id, g := range cs.GroupDict {
		m.group[id] = g == group
	}
	for id, sm := range cs.MetricDict {
		m.metric[id] = sm == subMetric
	}
	return m, true
}

func (m *rowMask) keep(cs *ColumnStore, j int) bool {
	y := cs.Years[j]
	return y >= m.start && y <= m.end &&
		m.region[cs.RegionIDs[j]] && m.group[cs.GroupIDs[j]] && m.metric[cs.MetricIDs[j]]
}

// RegionTotals sums the matching values per region, largest first.
func (d *Dataset) RegionTotals(q Query) []models.RegionTotal {
	cs := d.store
	out := make([]models.RegionTotal, 0)
	m, ok := cs.mask(q)
	if !ok || cs.Len() == 0 {
		return out
	}

	// 1. Dimensions
	numRegs := len(cs.RegionDict)

	// 2. Setup Workers
	numWorkers := runtime.NumCPU()
	if numWorkers > cs.Len() {
		numWorkers = cs.Len()
	}
	chunkSize := cs.Len() / numWorkers

	type partialAgg struct {
		regSum  []float64
		regRows []int
	}
	partials := make([]*partialAgg, numWorkers)

	// 3. Parallel Loop
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = cs.Len()
		}

		wg.Add(1)
		go func(idx, s, e int) {
			defer wg.Done()
			p := &partialAgg{
				regSum:  make([]float64, numRegs),
				regRows: make([]int, numRegs),
			}
			for j := s; j < e; j++ {
				if !m.keep(cs, j) {
					continue
				}
				rid := cs.RegionIDs[j]
				p.regSum[rid] += cs.Values[j]
				p.regRows[rid]++
			}
			partials[idx] = p
		}(i, start, end)
	}
	wg.Wait()

	// 4. Merge Phase, in worker order so sums are reproducible
	finalSum := make([]float64, numRegs)
	finalRows := make([]int, numRegs)
	for _, p := range partials {
		for i := 0; i < numRegs; i++ {
			finalSum[i] += p.regSum[i]
			finalRows[i] += p.regRows[i]
		}
	}

	// 5. Build Result
	for i, n := range finalRows {
		if n > 0 {
			out = append(out, models.RegionTotal{Region: cs.RegionDict[i], Total: finalSum[i], Rows: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

package engine

import (
	"testing"

	"gdpseries/internal/models"
)

func TestRegionTotals(t *testing.T) {
	// 1. Setup Mock Data
	// Auckland 100 + 200, Otago 50, one per-capita row that must not count
	ds := NewDataset("mock", []models.Observation{
		{Year: 2021, Region: "Auckland", Group: GroupGDP, SeriesMetric: SubMetricGDP, Value: 100},
		{Year: 2022, Region: "Auckland", Group: GroupGDP, SeriesMetric: SubMetricGDP, Value: 200},
		{Year: 2022, Region: "Otago", Group: GroupGDP, SeriesMetric: SubMetricGDP, Value: 50},
		{Year: 2022, Region: "Otago", Group: GroupGDPPerCapita, Value: 9000},
		{Year: 2019, Region: "Otago", Group: GroupGDP, SeriesMetric: SubMetricGDP, Value: 1000},
	})

	// 2. Run Aggregation
	totals := ds.RegionTotals(Query{Metric: "Gross Domestic Product", StartYear: 2020, EndYear: 2024})

	// 3. Assertions
	if len(totals) != 2 {
		t.Fatalf("Expected 2 region totals, got %d", len(totals))
	}

	top := totals[0]
	if top.Region != "Auckland" {
		t.Errorf("Expected top region Auckland, got %s", top.Region)
	}
	if top.Total != 300.0 {
		t.Errorf("Expected Auckland total 300.0, got %f", top.Total)
	}
	if top.Rows != 2 {
		t.Errorf("Expected Auckland rows 2, got %d", top.Rows)
	}
	if totals[1].Region != "Otago" || totals[1].Total != 50.0 {
		t.Errorf("Otago total incorrect: %+v", totals[1])
	}
}

func TestRegionTotalsFilters(t *testing.T) {
	ds := loadFixture(t)

	got := ds.RegionTotals(Query{Metric: "Gross Domestic Product", Regions: OnlyRegions("Wellington"), StartYear: 2000, EndYear: 2024})
	if len(got) != 1 || got[0].Region != "Wellington" || !almostEqual(got[0].Total, 110e6) {
		t.Errorf("Wellington totals: %+v", got)
	}

	if got := ds.RegionTotals(Query{Metric: "GDP", StartYear: 2000, EndYear: 2024}); len(got) != 0 {
		t.Errorf("unknown metric should give no totals, got %+v", got)
	}
	if got := ds.RegionTotals(Query{Metric: "Gross Domestic Product", Regions: OnlyRegions(), StartYear: 2000, EndYear: 2024}); len(got) != 0 {
		t.Errorf("empty region list should give no totals, got %+v", got)
	}
}

func TestRegionTotalsMatchesQuery(t *testing.T) {
	// Enough rows to spread over every worker.
	var obs []models.Observation
	regions := []string{"Auckland", "Waikato", "Otago", "Southland"}
	for y := 1990; y < 2024; y++ {
		for i, r := range regions {
			obs = append(obs, models.Observation{Year: y, Region: r, Group: GroupGDP, SeriesMetric: SubMetricGDP, Value: float64(y*(i+1)) / 4})
		}
	}
	ds := NewDataset("wide", obs)
	q := Query{Metric: "Gross Domestic Product", StartYear: 2000, EndYear: 2010}

	want := make(map[string]float64)
	for _, o := range ds.Query(q) {
		want[o.Region] += o.Value
	}
	got := ds.RegionTotals(q)
	if len(got) != len(regions) {
		t.Fatalf("Expected %d totals, got %d", len(regions), len(got))
	}
	for i, rt := range got {
		if !almostEqual(rt.Total, want[rt.Region]) {
			t.Errorf("%s: got %f, want %f", rt.Region, rt.Total, want[rt.Region])
		}
		if rt.Rows != 11 {
			t.Errorf("%s: got %d rows, want 11", rt.Region, rt.Rows)
		}
		if i > 0 && got[i-1].Total < rt.Total {
			t.Errorf("totals not descending at %d", i)
		}
	}
}

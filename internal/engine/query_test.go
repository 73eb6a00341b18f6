package engine

import (
	"reflect"
	"testing"

	"gdpseries/internal/models"
)

func TestQuery(t *testing.T) {
	ds := loadFixture(t)

	rows := ds.Query(Query{Metric: "Gross Domestic Product", StartYear: 2001, EndYear: 2002})
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d: %+v", len(rows), rows)
	}
	for _, r := range rows {
		if r.Year < 2001 || r.Year > 2002 {
			t.Errorf("row outside window: %+v", r)
		}
		if !Classify(r, "Gross Domestic Product") {
			t.Errorf("row of another metric: %+v", r)
		}
	}

	perCapita := ds.Query(Query{Metric: "GDP per capita", StartYear: 2000, EndYear: 2024})
	if len(perCapita) != 2 || perCapita[0].Value != 40000 {
		t.Errorf("per capita rows: %+v", perCapita)
	}
}

func TestQueryEmptyResults(t *testing.T) {
	ds := loadFixture(t)

	tests := []struct {
		name string
		q    Query
	}{
		{"unknown metric", Query{Metric: "GDP", StartYear: 2000, EndYear: 2024}},
		{"inverted years", Query{Metric: "Gross Domestic Product", StartYear: 2024, EndYear: 2000}},
		{"empty region list", Query{Metric: "Gross Domestic Product", Regions: OnlyRegions(), StartYear: 2000, EndYear: 2024}},
		{"unknown region", Query{Metric: "Gross Domestic Product", Regions: OnlyRegions("auckland"), StartYear: 2000, EndYear: 2024}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.Query(tt.q)
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil result, got %#v", got)
			}
		})
	}
}

func TestQueryRegionFilter(t *testing.T) {
	ds := loadFixture(t)
	q := Query{Metric: "Gross Domestic Product", StartYear: 2000, EndYear: 2024}

	unset := ds.Query(q)
	q.Regions = AllRegions()
	if all := ds.Query(q); !reflect.DeepEqual(all, unset) {
		t.Errorf("AllRegions differs from unset filter")
	}
	if len(unset) != 7 {
		t.Errorf("Expected 7 rows without a filter, got %d", len(unset))
	}

	q.Regions = OnlyRegions("Wellington", "Chatham Islands")
	for _, r := range ds.Query(q) {
		if r.Region == "Auckland" {
			t.Errorf("Auckland passed an Only filter")
		}
	}

	q.Regions = ExceptRegions("Auckland")
	if got := ds.Query(q); len(got) != 4 {
		t.Errorf("Except Auckland: got %d rows, want 4", len(got))
	}
}

func TestRegionFilter(t *testing.T) {
	var zero RegionFilter
	if zero.IsSet() || !zero.Allows("anything") {
		t.Error("zero filter should be unset and allow everything")
	}
	if !OnlyRegions().IsSet() || OnlyRegions().Allows("Otago") {
		t.Error("empty Only filter should be set and allow nothing")
	}
	agg := ExceptRegions(AggregateRegions...)
	if agg.Allows("New Zealand") || !agg.Allows("Otago") {
		t.Error("Except filter misbehaves")
	}
}

func TestQueryIdempotentAndUnaliased(t *testing.T) {
	ds := loadFixture(t)
	q := Query{Metric: "Gross Domestic Product", StartYear: 2000, EndYear: 2024}

	first := ds.Query(q)
	second := ds.Query(q)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated queries differ")
	}

	first[0].Value = -1
	first[0].Region = "changed"
	if third := ds.Query(q); !reflect.DeepEqual(third, second) {
		t.Error("mutating a result changed the dataset")
	}
}

func TestSnapshot(t *testing.T) {
	ds := loadFixture(t)

	rows := ds.Snapshot("Gross Domestic Product", RegionFilter{}, 2002, SortValueDesc)
	var regions []string
	for _, r := range rows {
		if r.Year != 2002 {
			t.Errorf("row from %d in 2002 snapshot", r.Year)
		}
		regions = append(regions, r.Region)
	}
	want := []string{"Auckland", "Wellington", "Chatham Islands"}
	if !reflect.DeepEqual(regions, want) {
		t.Errorf("snapshot order: got %v, want %v", regions, want)
	}
}

func TestCatalog(t *testing.T) {
	ds := loadFixture(t)
	if got, want := ds.Regions(), []string{"Auckland", "Chatham Islands", "Wellington"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Regions: got %v, want %v", got, want)
	}
	mixed := NewDataset("mixed", []models.Observation{
		gdp("Waikato", 2000, 1), gdp("auckland", 2000, 1), gdp("Ōtaki", 2000, 1), gdp("Bay of Plenty", 2000, 1),
	})
	if got, want := mixed.Regions(), regionsOf(Sort(mixed.Observations(), SortAlphabetical)); !reflect.DeepEqual(got, want) {
		t.Errorf("Regions disagrees with alphabetical sort: got %v, want %v", got, want)
	}
	if got, want := ds.Years(), []int{2000, 2001, 2002}; !reflect.DeepEqual(got, want) {
		t.Errorf("Years: got %v, want %v", got, want)
	}
}

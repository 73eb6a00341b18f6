package engine

import "testing"

func TestParseMetric(t *testing.T) {
	tests := map[string]Metric{
		"Gross Domestic Product":   MetricGDP,
		" gross domestic product ": MetricGDP,
		"GDP per capita":           MetricGDPPerCapita,
		"gdp PER capita":           MetricGDPPerCapita,
		"GDP":                      MetricUnknown,
		"":                         MetricUnknown,
	}
	for in, want := range tests {
		if got := ParseMetric(in); got != want {
			t.Errorf("ParseMetric(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestClassifyExclusive(t *testing.T) {
	ds := loadFixture(t)
	counts := map[Metric]int{}
	for _, o := range ds.Observations() {
		gdp := Classify(o, "Gross Domestic Product")
		perCapita := Classify(o, "GDP per capita")
		if gdp && perCapita {
			t.Fatalf("row matches both metrics: %+v", o)
		}
		if Classify(o, "Regional GDP") {
			t.Errorf("unknown metric matched %+v", o)
		}
		switch {
		case gdp:
			counts[MetricGDP]++
		case perCapita:
			counts[MetricGDPPerCapita]++
		default:
			counts[MetricUnknown]++
		}
	}
	// The industry row (Agriculture) belongs to neither metric.
	if counts[MetricGDP] != 7 || counts[MetricGDPPerCapita] != 2 || counts[MetricUnknown] != 1 {
		t.Errorf("unexpected classification counts: %v", counts)
	}
}

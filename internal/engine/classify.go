package engine

import (
	"strings"

	"gdpseries/internal/models"
)

// Metric is one of the named series a query can ask for.
type Metric int

const (
	MetricUnknown Metric = iota
	MetricGDP
	MetricGDPPerCapita
)

// Group and sub-metric labels after folding.
const (
	GroupGDP          = "gross domestic product, by region and industry"
	GroupGDPPerCapita = "gross domestic product per person, by region"
	SubMetricGDP      = "gross domestic product"
)

// ParseMetric matches a metric name case-insensitively. Anything but the two
// known names is MetricUnknown.
func ParseMetric(name string) Metric {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gross domestic product":
		return MetricGDP
	case "gdp per capita":
		return MetricGDPPerCapita
	default:
		return MetricUnknown
	}
}

func (m Metric) String() string {
	switch m {
	case MetricGDP:
		return "Gross Domestic Product"
	case MetricGDPPerCapita:
		return "GDP per capita"
	default:
		return "unknown"
	}
}

// labels returns the folded (group, sub-metric) pair that identifies m.
func (m Metric) labels() (group, subMetric string, ok bool) {
	switch m {
	case MetricGDP:
		return GroupGDP, SubMetricGDP, true
	case MetricGDPPerCapita:
		return GroupGDPPerCapita, "", true
	default:
		return "", "", false
	}
}

// matches reports whether the (group, sub-metric) pair belongs to m. The two
// predicates never share a group, so a pair matches at most one metric.
func (m Metric) matches(group, subMetric string) bool {
	g, sm, ok := m.labels()
	return ok && group == g && subMetric == sm
}

// Classify reports whether obs belongs to the requested metric.
func Classify(obs models.Observation, requested string) bool {
	return ParseMetric(requested).matches(obs.Group, obs.SeriesMetric)
}

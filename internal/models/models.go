package models

// Observation is one normalized row of the regional GDP dataset.
type Observation struct {
	Year         int     `json:"year"`
	Region       string  `json:"region"`
	Group        string  `json:"group"`
	SeriesMetric string  `json:"series_metric"`
	Value        float64 `json:"value"`
}

// WindowGrowth is the start/end change of one region over a year window.
type WindowGrowth struct {
	Region         string  `json:"region"`
	ReferenceValue float64 `json:"reference_value"`
	TargetValue    float64 `json:"target_value"`
	GrowthPercent  float64 `json:"growth_percent"`
}

// YearGrowth is the change of one region against the previous year.
type YearGrowth struct {
	Region        string  `json:"region"`
	Year          int     `json:"year"`
	GrowthPercent float64 `json:"growth_percent"`
}

type SeriesPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// RegionSeries is one region's time series (a small multiple panel).
type RegionSeries struct {
	Region string        `json:"region"`
	Points []SeriesPoint `json:"points"`
}

// YoYMatrix holds the cells of a year-over-year heatmap with its axes.
type YoYMatrix struct {
	Years   []int        `json:"years"`
	Regions []string     `json:"regions"`
	Cells   []YearGrowth `json:"cells"`
}

type RegionTotal struct {
	Region string  `json:"region"`
	Total  float64 `json:"total"`
	Rows   int     `json:"rows"`
}

// GrowthSummary describes the finite YoY growth values of one region.
type GrowthSummary struct {
	Region    string  `json:"region"`
	StartYear int     `json:"start_year"`
	EndYear   int     `json:"end_year"`
	Samples   int     `json:"samples"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"std_dev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	CAGR      float64 `json:"cagr"`
}

// LoadStats reports what happened to the rows of a source.
type LoadStats struct {
	Source    string         `json:"source"`
	Rows      int            `json:"rows"`
	Kept      int            `json:"kept"`
	Discarded map[string]int `json:"discarded"`
}

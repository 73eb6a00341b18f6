package engine

import (
	"errors"
	"testing"
)

func TestParseRow(t *testing.T) {
	row := RawRow{
		ColPeriod:    "2024.03",
		ColRegion:    "Bay of Plenty",
		ColGroup:     "  GROSS Domestic Product, by region and industry ",
		ColSubMetric: "Gross Domestic Product",
		ColValue:     "1.5",
		ColMagnitude: "3",
	}
	obs, err := ParseRow(row)
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if obs.Year != 2024 {
		t.Errorf("Year: got %d, want 2024", obs.Year)
	}
	if obs.Region != "Bay of Plenty" {
		t.Errorf("Region: got %q", obs.Region)
	}
	if obs.Group != GroupGDP {
		t.Errorf("Group: got %q, want %q", obs.Group, GroupGDP)
	}
	if obs.SeriesMetric != SubMetricGDP {
		t.Errorf("SeriesMetric: got %q", obs.SeriesMetric)
	}
	if !almostEqual(obs.Value, 1500) {
		t.Errorf("Value: got %f, want 1500", obs.Value)
	}
}

func TestParseRowVariants(t *testing.T) {
	base := func() RawRow {
		return RawRow{ColPeriod: "2010.03", ColRegion: "Otago", ColGroup: "g", ColValue: "42", ColMagnitude: "0"}
	}

	// A period without a sub-period still has a year.
	r := base()
	r[ColPeriod] = "2010"
	if obs, err := ParseRow(r); err != nil || obs.Year != 2010 {
		t.Errorf("bare year: got %+v, %v", obs, err)
	}

	// A missing sub-metric folds to "".
	if obs, err := ParseRow(base()); err != nil || obs.SeriesMetric != "" {
		t.Errorf("missing sub-metric: got %+v, %v", obs, err)
	}

	// Negative magnitudes scale down.
	r = base()
	r[ColMagnitude] = "-1"
	if obs, err := ParseRow(r); err != nil || !almostEqual(obs.Value, 4.2) {
		t.Errorf("negative magnitude: got %+v, %v", obs, err)
	}
}

func TestParseRowDiscards(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(RawRow)
		reason string
	}{
		{"bad year", func(r RawRow) { r[ColPeriod] = "abc.03" }, ReasonYear},
		{"empty period", func(r RawRow) { r[ColPeriod] = "" }, ReasonYear},
		{"empty value", func(r RawRow) { r[ColValue] = "" }, ReasonValue},
		{"text value", func(r RawRow) { r[ColValue] = "C" }, ReasonValue},
		{"no magnitude column", func(r RawRow) { delete(r, ColMagnitude) }, ReasonMagnitude},
		{"empty magnitude", func(r RawRow) { r[ColMagnitude] = " " }, ReasonMagnitude},
		{"text magnitude", func(r RawRow) { r[ColMagnitude] = "six" }, ReasonMagnitude},
		{"overflow", func(r RawRow) { r[ColValue] = "1e308"; r[ColMagnitude] = "10" }, ReasonNonFinite},
		{"nan", func(r RawRow) { r[ColValue] = "NaN" }, ReasonNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RawRow{ColPeriod: "2010.03", ColRegion: "Otago", ColGroup: "g", ColValue: "42", ColMagnitude: "6"}
			tt.edit(r)
			_, err := ParseRow(r)
			if !errors.Is(err, ErrRowDiscarded) {
				t.Fatalf("expected ErrRowDiscarded, got %v", err)
			}
			if got := discardReason(err); got != tt.reason {
				t.Errorf("reason: got %q, want %q", got, tt.reason)
			}
		})
	}
}

package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gdpseries/internal/models"
)

// Source column names. MAGNTUDE is spelled the way the published CSV spells it.
const (
	ColPeriod    = "Period"
	ColRegion    = "Series_title_2"
	ColGroup     = "Group"
	ColSubMetric = "Series_title_3"
	ColValue     = "Data_value"
	ColMagnitude = "MAGNTUDE"
)

// Discard reasons, used as keys in LoadStats.Discarded.
const (
	ReasonYear      = "year"
	ReasonValue     = "value"
	ReasonMagnitude = "magnitude"
	ReasonNonFinite = "non_finite"
)

// ErrRowDiscarded marks a row that is dropped from the dataset. It never
// leaves the engine.
var ErrRowDiscarded = errors.New("row discarded")

// RawRow is one CSV record keyed by cleaned header name.
type RawRow map[string]string

// DiscardError carries the reason a row was dropped.
type DiscardError struct {
	Reason string
	Field  string
	Raw    string
}

func (e *DiscardError) Error() string {
	return fmt.Sprintf("%s: bad %s %q", ErrRowDiscarded, e.Field, e.Raw)
}

func (e *DiscardError) Unwrap() error { return ErrRowDiscarded }

func discard(reason, field, raw string) error {
	return &DiscardError{Reason: reason, Field: field, Raw: raw}
}

// ParseRow converts one raw record into an Observation. The value is always
// scaled by 10^MAGNTUDE.
func ParseRow(row RawRow) (models.Observation, error) {
	var obs models.Observation

	period := strings.TrimSpace(row[ColPeriod])
	yearStr, _, _ := strings.Cut(period, ".")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return obs, discard(ReasonYear, ColPeriod, period)
	}

	rawValue := strings.TrimSpace(row[ColValue])
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return obs, discard(ReasonValue, ColValue, rawValue)
	}

	rawMag, ok := row[ColMagnitude]
	rawMag = strings.TrimSpace(rawMag)
	if !ok || rawMag == "" {
		return obs, discard(ReasonMagnitude, ColMagnitude, rawMag)
	}
	mag, err := strconv.ParseFloat(rawMag, 64)
	if err != nil {
		return obs, discard(ReasonMagnitude, ColMagnitude, rawMag)
	}

	scaled := value * math.Pow(10, mag)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return obs, discard(ReasonNonFinite, ColValue, rawValue)
	}

	obs.Year = year
	obs.Region = row[ColRegion]
	obs.Group = foldLabel(row[ColGroup])
	obs.SeriesMetric = foldLabel(row[ColSubMetric])
	obs.Value = scaled
	return obs, nil
}

// foldLabel trims and lower-cases a categorical label. A missing label folds
// to "".
func foldLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers are stateful, so one per call.
	return cases.Lower(language.Und).String(s)
}

// discardReason extracts the reason of a discard error, or "" for other errors.
func discardReason(err error) string {
	var de *DiscardError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

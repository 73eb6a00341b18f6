package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"gdpseries/internal/models"
)

var (
	// ErrSourceLoad wraps every whole-source failure returned by the loader
	// and the cache.
	ErrSourceLoad = errors.New("source load failed")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing column")
)

// requiredColumns must appear in the header. MAGNTUDE and Series_title_3 are
// handled per row.
var requiredColumns = []string{ColPeriod, ColRegion, ColGroup, ColValue}

// cleanHeader trims whitespace, a UTF-8 BOM and stray quotes from a header cell.
func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}

// LoadColumnar parses a CSV stream into a Dataset. Rows that fail ParseRow are
// counted and dropped; only stream-level problems return an error.
func LoadColumnar(r io.Reader, source string, logger *log.Logger) (*Dataset, error) {
	if logger == nil {
		logger = quietLogger()
	}
	start := time.Now()
	logger.Infof("loading %s", source)

	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty source", ErrSourceLoad, source)
		}
		return nil, fmt.Errorf("%w: %s: read header: %v", ErrSourceLoad, source, err)
	}
	headers := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		headers[i] = cleanHeader(h)
		present[headers[i]] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return nil, fmt.Errorf("%w: %s: %w %q", ErrSourceLoad, source, ErrMissingColumn, col)
		}
	}

	stats := models.LoadStats{Source: source, Discarded: make(map[string]int)}
	b := newStoreBuilder(4096)
	row := make(RawRow, len(headers))

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceLoad, source, err)
		}
		stats.Rows++

		clear(row)
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}

		obs, err := ParseRow(row)
		if err != nil {
			stats.Discarded[discardReason(err)]++
			continue
		}
		b.add(obs)
		stats.Kept++
	}

	for reason, n := range stats.Discarded {
		logger.Debugf("%s: discarded %d rows (%s)", source, n, reason)
	}
	logger.Infof("load complete: %s rows=%d kept=%d time=%v", source, stats.Rows, stats.Kept, time.Since(start))

	return &Dataset{
		source:   source,
		store:    b.done(),
		stats:    stats,
		loadedAt: time.Now(),
	}, nil
}

func quietLogger() *log.Logger {
	l := log.New("engine")
	l.SetOutput(io.Discard)
	return l
}

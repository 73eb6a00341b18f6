package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/labstack/gommon/log"

	"gdpseries/internal/config"
	"gdpseries/internal/engine"
	"gdpseries/internal/models"
)

func main() {
	fs := flag.CommandLine
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\nLoads the regional GDP dataset, runs one query and prints the result.\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	metric := fs.String("metric", "Gross Domestic Product", `"Gross Domestic Product" or "GDP per capita"`)
	start := fs.Int("start", 2000, "first year (inclusive)")
	end := fs.Int("end", 2024, "last year (inclusive)")
	regions := fs.String("regions", "", "comma separated region names (default all)")
	sortKey := fs.String("sort", "", "alphabetical, gdp-desc, gdp-asc, growth-desc or growth-asc")
	view := fs.String("view", "observations", "observations, growth or totals")
	format := fs.String("format", "table", "table, json or arrow")
	outPath := fs.String("o", "", "output file (default stdout)")

	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger("gdpexport")
	logger.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	cache := engine.NewCache(engine.AutoFetcher{}, logger)
	ds, err := cache.Load(ctx, cfg.Source)
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	q := engine.Query{Metric: *metric, StartYear: *start, EndYear: *end}
	switch {
	case *regions != "":
		q.Regions = engine.OnlyRegions(splitList(*regions)...)
	case cfg.ExcludeAggregates:
		q.Regions = engine.ExceptRegions(engine.AggregateRegions...)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := run(out, ds, q, *view, *format, engine.SortKey(*sortKey)); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, ds *engine.Dataset, q engine.Query, view, format string, key engine.SortKey) error {
	switch view {
	case "observations":
		rows := engine.Sort(ds.Query(q), key)
		switch format {
		case "arrow":
			return engine.WriteArrow(w, nil, rows)
		case "json":
			return writeJSON(w, rows)
		default:
			return observationTable(w, rows)
		}
	case "growth":
		if key == "" {
			key = engine.SortGrowthDesc
		}
		rows := ds.GrowthTable(q, key)
		if format == "json" {
			return writeJSON(w, growthJSON(rows))
		}
		return growthTable(w, rows)
	case "totals":
		rows := ds.RegionTotals(q)
		if format == "json" {
			return writeJSON(w, rows)
		}
		return totalsTable(w, rows)
	default:
		return fmt.Errorf("unknown view %q", view)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type growthRow struct {
	Region         string   `json:"region"`
	ReferenceValue float64  `json:"reference_value"`
	TargetValue    float64  `json:"target_value"`
	GrowthPercent  *float64 `json:"growth_percent"`
	GrowthLabel    string   `json:"growth_label"`
}

// growthJSON replaces non-finite growth, which JSON cannot encode, with null.
func growthJSON(rows []models.WindowGrowth) []growthRow {
	out := make([]growthRow, len(rows))
	for i, r := range rows {
		out[i] = growthRow{Region: r.Region, ReferenceValue: r.ReferenceValue, TargetValue: r.TargetValue, GrowthLabel: engine.PercentLabel(r.GrowthPercent)}
		if g := r.GrowthPercent; !math.IsNaN(g) && !math.IsInf(g, 0) {
			out[i].GrowthPercent = &g
		}
	}
	return out
}

func observationTable(w io.Writer, rows []models.Observation) error {
	top := 0.0
	for _, r := range rows {
		if r.Value > top {
			top = r.Value
		}
	}
	short := engine.MoneyFormatter(top)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tREGION\tVALUE\tSHORT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Year, r.Region, engine.Comma(r.Value), short(r.Value))
	}
	return tw.Flush()
}

func growthTable(w io.Writer, rows []models.WindowGrowth) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tSTART\tEND\tGROWTH")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Region, engine.Comma(r.ReferenceValue), engine.Comma(r.TargetValue), engine.PercentLabel(r.GrowthPercent))
	}
	return tw.Flush()
}

func totalsTable(w io.Writer, rows []models.RegionTotal) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tTOTAL\tROWS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Region, engine.Comma(r.Total), r.Rows)
	}
	return tw.Flush()
}

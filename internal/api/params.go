package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"gdpseries/internal/engine"
)

// Defaults match the chart front-ends.
const (
	defaultMetric    = "Gross Domestic Product"
	defaultStartYear = 2000
	defaultEndYear   = 2024
	defaultYear      = 2024
)

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return v, nil
}

func metricParam(c echo.Context) string {
	if m := strings.TrimSpace(c.QueryParam("metric")); m != "" {
		return m
	}
	return defaultMetric
}

func sortParam(c echo.Context, fallback engine.SortKey) engine.SortKey {
	if s := strings.TrimSpace(c.QueryParam("sort")); s != "" {
		return engine.SortKey(s)
	}
	return fallback
}

// regionsParam distinguishes an absent "regions" parameter (the handler
// default) from a present but empty one (no regions at all).
func (h *Handler) regionsParam(c echo.Context) engine.RegionFilter {
	values, ok := c.QueryParams()["regions"]
	if !ok {
		return h.defaultRegions
	}
	var names []string
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return engine.OnlyRegions(names...)
}

// rangeQuery reads metric, regions, start and end.
func (h *Handler) rangeQuery(c echo.Context) (engine.Query, error) {
	start, err := intParam(c, "start", defaultStartYear)
	if err != nil {
		return engine.Query{}, err
	}
	end, err := intParam(c, "end", defaultEndYear)
	if err != nil {
		return engine.Query{}, err
	}
	return engine.Query{
		Metric:    metricParam(c),
		Regions:   h.regionsParam(c),
		StartYear: start,
		EndYear:   end,
	}, nil
}

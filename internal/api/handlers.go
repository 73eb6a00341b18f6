package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gdpseries/internal/engine"
	"gdpseries/internal/models"
)

type Handler struct {
	cache          *engine.Cache
	source         string
	timeout        time.Duration
	defaultRegions engine.RegionFilter
}

// NewHandler serves queries against source, loaded through cache. When
// excludeAggregates is set, requests without a regions parameter leave out
// the national and island totals.
func NewHandler(cache *engine.Cache, source string, timeout time.Duration, excludeAggregates bool) *Handler {
	h := &Handler{cache: cache, source: source, timeout: timeout}
	if excludeAggregates {
		h.defaultRegions = engine.ExceptRegions(engine.AggregateRegions...)
	}
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/observations", h.GetObservations)
	api.GET("/observations.arrow", h.GetObservationsArrow)
	api.GET("/snapshot", h.GetSnapshot)
	api.GET("/series", h.GetSeries)
	api.GET("/totals", h.GetTotals)
	api.GET("/growth/window", h.GetWindowGrowth)
	api.GET("/growth/yoy", h.GetYoYGrowth)
	api.GET("/growth/summary", h.GetGrowthSummary)
	api.GET("/regions", h.GetRegions)
	api.GET("/years", h.GetYears)
	api.GET("/stats", h.GetStats)
}

// dataset waits for the cached dataset. While the first load is running a
// request gives up after the handler timeout with 503.
func (h *Handler) dataset(c echo.Context) (*engine.Dataset, error) {
	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	ds, err := h.cache.Load(ctx, h.source)
	switch {
	case err == nil:
		return ds, nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading").SetInternal(err)
	default:
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset unavailable").SetInternal(err)
	}
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	if _, ok := h.cache.Cached(h.source); ok {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
}

func (h *Handler) GetObservations(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	rows := engine.Sort(ds.Query(q), sortParam(c, ""))
	total := len(rows)
	limit, offset := getPaginationParams(c, total)

	page := []models.Observation{}
	if offset < total {
		end := total
		if limit < total-offset {
			end = offset + limit
		}
		page = rows[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   page,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetObservationsArrow(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	rows := engine.Sort(ds.Query(q), sortParam(c, ""))

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.apache.arrow.stream")
	c.Response().WriteHeader(http.StatusOK)
	return engine.WriteArrow(c.Response(), nil, rows)
}

// bar chart
func (h *Handler) GetSnapshot(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	year, err := intParam(c, "year", defaultYear)
	if err != nil {
		return err
	}
	rows := ds.Snapshot(metricParam(c), h.regionsParam(c), year, sortParam(c, engine.SortValueDesc))
	return c.JSON(http.StatusOK, rows)
}

// small multiples
func (h *Handler) GetSeries(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.SeriesByRegion(q))
}

func (h *Handler) GetTotals(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.RegionTotals(q))
}

// dumbbell plot
func (h *Handler) GetWindowGrowth(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	table := ds.GrowthTable(q, sortParam(c, engine.SortGrowthDesc))
	out := make([]windowGrowthJSON, len(table))
	for i, g := range table {
		out[i] = windowGrowthJSON{
			Region:         g.Region,
			ReferenceValue: g.ReferenceValue,
			TargetValue:    g.TargetValue,
			GrowthPercent:  finite(g.GrowthPercent),
			GrowthLabel:    engine.PercentLabel(g.GrowthPercent),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// heatmap
func (h *Handler) GetYoYGrowth(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	m := ds.YoYMatrix(q)
	out := yoyMatrixJSON{Years: m.Years, Regions: m.Regions, Cells: make([]yearGrowthJSON, len(m.Cells))}
	for i, g := range m.Cells {
		out.Cells[i] = yearGrowthJSON{
			Region:        g.Region,
			Year:          g.Year,
			GrowthPercent: finite(g.GrowthPercent),
			GrowthLabel:   engine.PercentLabel(g.GrowthPercent),
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetGrowthSummary(c echo.Context) error {
	region := c.QueryParam("region")
	if region == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "region is required")
	}
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	q, err := h.rangeQuery(c)
	if err != nil {
		return err
	}
	sum, ok := ds.Summarize(q, region)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no rows for region "+region)
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *Handler) GetRegions(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.Regions())
}

func (h *Handler) GetYears(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.Years())
}

func (h *Handler) GetStats(c echo.Context) error {
	ds, err := h.dataset(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.Stats())
}

type windowGrowthJSON struct {
	Region         string   `json:"region"`
	ReferenceValue float64  `json:"reference_value"`
	TargetValue    float64  `json:"target_value"`
	GrowthPercent  *float64 `json:"growth_percent"`
	GrowthLabel    string   `json:"growth_label"`
}

type yearGrowthJSON struct {
	Region        string   `json:"region"`
	Year          int      `json:"year"`
	GrowthPercent *float64 `json:"growth_percent"`
	GrowthLabel   string   `json:"growth_label"`
}

type yoyMatrixJSON struct {
	Years   []int            `json:"years"`
	Regions []string         `json:"regions"`
	Cells   []yearGrowthJSON `json:"cells"`
}

// finite returns nil for values JSON cannot carry.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mferns/meal-reservation/internal/weather"
)

// MetricsHandler exposes weather-cache statistics.  The load test
// polls this endpoint to verify the forecast cache keeps the miss rate
// down under load.
type MetricsHandler struct {
	Weather *weather.Client
}

// WeatherCache handles GET /api/v1/metrics/weather-cache.
func (h *MetricsHandler) WeatherCache(c echo.Context) error {
	var hits, misses uint64
	if h.Weather != nil {
		hits, misses = h.Weather.Stats()
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hits":   hits,
		"misses": misses,
	})
}

// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mferns/meal-reservation/internal/handler"
)

// RegisterRoutes wires every endpoint under /api/v1 plus the bare
// health check.  browseMW carries the redis response cache and rate
// limiter; it is applied only to the read-only browse and metrics
// routes, never to the mutating reservation operations, which must hit
// the engine on every call.
func RegisterRoutes(e *echo.Echo, b *handler.BrowseHandler, r *handler.ReservationHandler, s *handler.StaffHandler, m *handler.MetricsHandler, browseMW ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1")

	// Public browsing; cached and rate limited.
	browse := api.Group("", browseMW...)
	browse.GET("/restaurants", b.ListRestaurants)
	browse.GET("/restaurants/:id", b.GetRestaurant)
	browse.GET("/restaurants/:id/meals", b.ListRestaurantMeals)
	browse.GET("/meals", b.ListMeals)
	browse.GET("/metrics/weather-cache", m.WeatherCache)

	// Student reservation operations.
	api.POST("/reservations", r.Create)
	api.GET("/reservations/:token", r.Get)
	api.PUT("/reservations/:token/use", r.Use)
	api.DELETE("/reservations/:token", r.Cancel)

	// Staff check-in desk.  The code routes are registered before the
	// :token routes match-wise; echo resolves the static "code"
	// segment with higher priority, so both families coexist.
	api.GET("/reservations/code/:code", s.FindByCode)
	api.PUT("/reservations/code/:code/use", s.UseByCode)
	api.GET("/restaurants/:id/reservations/active", s.ListActive)
}

package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mferns/meal-reservation/internal/model"
	"github.com/mferns/meal-reservation/internal/repository"
	"github.com/mferns/meal-reservation/internal/service"
	"github.com/mferns/meal-reservation/internal/weather"
)

// defaultMealWindowDays is how far ahead meal listings look when the
// caller does not say.
const defaultMealWindowDays = 7

// BrowseHandler serves the unauthenticated browsing endpoints:
// restaurant listings and upcoming meals with remaining capacity and
// an optional weather annotation.
type BrowseHandler struct {
	Restaurants RestaurantSource
	Meals       MealSource
	Service     *service.ReservationService
	Weather     *weather.Client // nil disables forecast enrichment
}

// ListRestaurants handles GET /api/v1/restaurants.
func (h *BrowseHandler) ListRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	rests, err := h.Restaurants.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
	}
	out := make([]RestaurantResponse, 0, len(rests))
	for _, r := range rests {
		out = append(out, RestaurantResponse{ID: r.ID, Name: r.Name, Location: r.Location, Description: r.Description})
	}
	return c.JSON(http.StatusOK, out)
}

// GetRestaurant handles GET /api/v1/restaurants/:id.
func (h *BrowseHandler) GetRestaurant(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	rest, err := h.Restaurants.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	return c.JSON(http.StatusOK, RestaurantResponse{ID: rest.ID, Name: rest.Name, Location: rest.Location, Description: rest.Description})
}

// ListMeals handles GET /api/v1/meals?restaurantId=&days=.
func (h *BrowseHandler) ListMeals(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.QueryParam("restaurantId"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId is required"})
	}
	return h.listMealsFor(c, restaurantID)
}

// ListRestaurantMeals handles GET /api/v1/restaurants/:id/meals.
func (h *BrowseHandler) ListRestaurantMeals(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	return h.listMealsFor(c, restaurantID)
}

func (h *BrowseHandler) listMealsFor(c echo.Context, restaurantID uint64) error {
	ctx := c.Request().Context()
	if _, err := h.Restaurants.GetByID(ctx, restaurantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}

	days := defaultMealWindowDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days must be a positive integer"})
		}
		days = n
	}

	meals, err := h.Meals.ListUpcoming(ctx, restaurantID, days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load meals"})
	}
	out := make([]MealResponse, 0, len(meals))
	for i := range meals {
		out = append(out, h.mealResponse(c, &meals[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BrowseHandler) mealResponse(c echo.Context, meal *model.Meal) MealResponse {
	resp := MealResponse{
		ID:           meal.ID,
		RestaurantID: meal.RestaurantID,
		Name:         meal.Name,
		Description:  meal.Description,
		Date:         meal.Date.Format("2006-01-02"),
		Serving:      meal.Serving,
		Capacity:     meal.Capacity,
		Remaining:    h.Service.Remaining(meal),
	}
	if h.Weather != nil {
		fc, err := h.Weather.ForecastForDate(c.Request().Context(), meal.Date)
		if err == nil {
			resp.Weather = &fc
		} else {
			// Forecast is cosmetic; log and move on.
			log.Printf("weather enrichment failed for %s: %v", resp.Date, err)
		}
	}
	return resp
}

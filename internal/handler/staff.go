package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mferns/meal-reservation/internal/repository"
	"github.com/mferns/meal-reservation/internal/service"
)

// StaffHandler serves the check-in desk: find a reservation by the
// code a student reads out, mark it used, and list the active
// reservations for a restaurant.  Codes are normalized server-side, so
// terminals may send any casing.
type StaffHandler struct {
	Service     *service.ReservationService
	Meals       MealSource
	Restaurants RestaurantSource
}

// FindByCode handles GET /api/v1/reservations/code/:code.
func (h *StaffHandler) FindByCode(c echo.Context) error {
	ctx := c.Request().Context()
	res, err := h.Service.Lookup(c.Param("code"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	resp, err := buildReservationResponse(ctx, res, h.Meals, h.Restaurants)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation details"})
	}
	return c.JSON(http.StatusOK, resp)
}

// UseByCode handles PUT /api/v1/reservations/code/:code/use.  Same
// semantics as check-in by token; the code route exists because the
// desk works from the code the student shows.
func (h *StaffHandler) UseByCode(c echo.Context) error {
	ctx := c.Request().Context()
	res, err := h.Service.Use(ctx, c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidInput):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrAlreadyUsed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already used"})
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to use reservation"})
	}
	resp, err := buildReservationResponse(ctx, res, h.Meals, h.Restaurants)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation details"})
	}
	return c.JSON(http.StatusOK, resp)
}

// ListActive handles GET /api/v1/restaurants/:id/reservations/active.
// Only CONFIRMED reservations appear; the order of the list carries no
// meaning.
func (h *StaffHandler) ListActive(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Restaurants.GetByID(ctx, restaurantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}

	active := h.Service.ActiveForRestaurant(restaurantID)
	out := make([]ReservationResponse, 0, len(active))
	for _, res := range active {
		resp, err := buildReservationResponse(ctx, res, h.Meals, h.Restaurants)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation details"})
		}
		out = append(out, *resp)
	}
	return c.JSON(http.StatusOK, out)
}

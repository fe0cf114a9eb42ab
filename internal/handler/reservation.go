package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mferns/meal-reservation/internal/repository"
	"github.com/mferns/meal-reservation/internal/service"
)

// ReservationHandler serves the student-facing reservation endpoints:
// booking, lookup, check-in and cancellation by token.  All state
// guarantees live in the service and repository layers; this layer
// translates outcomes to HTTP statuses and builds response records.
type ReservationHandler struct {
	Service     *service.ReservationService
	Meals       MealSource
	Restaurants RestaurantSource
}

// Create handles POST /api/v1/reservations?mealId=&partySize=.  On a
// full meal it returns 409; the two-clients-race where both saw one
// remaining seat resolves here with exactly one 200 and one 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	mealID, err := strconv.ParseUint(c.QueryParam("mealId"), 10, 64)
	if err != nil || mealID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mealId is required"})
	}
	partySize := 1
	if raw := c.QueryParam("partySize"); raw != "" {
		partySize, err = strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "partySize must be an integer"})
		}
	}

	ctx := c.Request().Context()
	res, err := h.Service.Create(ctx, mealID, partySize)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "meal not found"})
		case errors.Is(err, repository.ErrCapacityExhausted):
			return c.JSON(http.StatusConflict, echo.Map{"error": "meal is fully booked"})
		case errors.Is(err, repository.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "partySize must be at least 1"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	resp, err := buildReservationResponse(ctx, res, h.Meals, h.Restaurants)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation details"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/reservations/:token.  Used and cancelled
// reservations remain visible; the record carries their history.
func (h *ReservationHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	res, err := h.Service.Lookup(c.Param("token"))
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

// Use handles PUT /api/v1/reservations/:token/use.  When two
// terminals race on the same token, exactly one gets 200 and the other
// 409 with an "already used" message.
func (h *ReservationHandler) Use(c echo.Context) error {
	ctx := c.Request().Context()
	res, err := h.Service.Use(ctx, c.Param("token"))
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

// Cancel handles DELETE /api/v1/reservations/:token.  The failure
// statuses are deliberately distinct so the client can word its
// message: 400 for a reservation that was already checked in (not
// retryable), 404 for an unknown token, 409 for a repeat cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	res, err := h.Service.Cancel(ctx, c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidInput):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrAlreadyUsed):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot cancel a used reservation"})
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	resp, err := buildReservationResponse(ctx, res, h.Meals, h.Restaurants)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation details"})
	}
	return c.JSON(http.StatusOK, resp)
}

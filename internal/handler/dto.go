// Package handler exposes the HTTP surface of the service: public
// browsing, student reservation operations, staff check-in and the
// weather-cache metrics endpoint.
package handler

import (
	"context"
	"time"

	"github.com/mferns/meal-reservation/internal/model"
	"github.com/mferns/meal-reservation/internal/weather"
)

// RestaurantSource is the slice of the catalog the handlers read for
// browsing and response enrichment.  Satisfied by
// repository.RestaurantRepo; tests supply fixtures.
type RestaurantSource interface {
	ListAll(ctx context.Context) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id uint64) (*model.Restaurant, error)
}

// MealSource is the meal side of the catalog.  Satisfied by
// repository.MealRepo.
type MealSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Meal, error)
	ListUpcoming(ctx context.Context, restaurantID uint64, days int) ([]model.Meal, error)
}

// ReservationResponse is the single reservation record shape every
// endpoint returns.  The meal and restaurant names are denormalized in
// so the clients never need to stitch records together (or guess at
// shapes) themselves.
type ReservationResponse struct {
	Token          string     `json:"token"`
	Status         string     `json:"status"`
	Used           bool       `json:"used"`
	PartySize      int        `json:"partySize"`
	CreatedAt      time.Time  `json:"createdAt"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	MealID         uint64     `json:"mealId"`
	MealName       string     `json:"mealName"`
	MealDate       string     `json:"mealDate"`
	RestaurantID   uint64     `json:"restaurantId"`
	RestaurantName string     `json:"restaurantName"`
}

// buildReservationResponse joins a reservation with its meal and
// restaurant.  The catalog rows must exist for any reservation the
// engine has accepted, so a lookup failure here is a genuine server
// error and is propagated.
func buildReservationResponse(ctx context.Context, res model.Reservation, meals MealSource, restaurants RestaurantSource) (*ReservationResponse, error) {
	meal, err := meals.GetByID(ctx, res.MealID)
	if err != nil {
		return nil, err
	}
	rest, err := restaurants.GetByID(ctx, meal.RestaurantID)
	if err != nil {
		return nil, err
	}
	return &ReservationResponse{
		Token:          res.Code,
		Status:         string(res.Status),
		Used:           res.Used(),
		PartySize:      res.PartySize,
		CreatedAt:      res.CreatedAt,
		UsedAt:         res.UsedAt,
		CancelledAt:    res.CancelledAt,
		MealID:         meal.ID,
		MealName:       meal.Name,
		MealDate:       meal.Date.Format("2006-01-02"),
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
	}, nil
}

// MealResponse is a meal listing entry.  Remaining is computed from
// the seat ledger at response time; Weather is attached best-effort
// and omitted when the forecast is unavailable.
type MealResponse struct {
	ID           uint64            `json:"id"`
	RestaurantID uint64            `json:"restaurantId"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Date         string            `json:"date"`
	Serving      string            `json:"serving"`
	Capacity     int               `json:"capacity"`
	Remaining    int               `json:"remaining"`
	Weather      *weather.Forecast `json:"weather,omitempty"`
}

// RestaurantResponse is a restaurant browsing entry.
type RestaurantResponse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mferns/meal-reservation/internal/model"
	"github.com/mferns/meal-reservation/internal/repository"
	"github.com/mferns/meal-reservation/internal/service"
)

// fakeRestaurants is an in-memory RestaurantSource fixture.
type fakeRestaurants map[uint64]model.Restaurant

func (f fakeRestaurants) ListAll(_ context.Context) ([]model.Restaurant, error) {
	out := make([]model.Restaurant, 0, len(f))
	for _, r := range f {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f fakeRestaurants) GetByID(_ context.Context, id uint64) (*model.Restaurant, error) {
	r, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

// fakeMeals is an in-memory MealSource fixture.
type fakeMeals map[uint64]model.Meal

func (f fakeMeals) GetByID(_ context.Context, id uint64) (*model.Meal, error) {
	m, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (f fakeMeals) ListUpcoming(_ context.Context, restaurantID uint64, days int) ([]model.Meal, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, days)
	out := make([]model.Meal, 0)
	for _, m := range f {
		if m.RestaurantID == restaurantID && m.Date.Before(cutoff) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// testEnv bundles the handlers with a fixture catalog and a live
// in-memory engine, the same wiring main performs minus MySQL.
type testEnv struct {
	restaurants  fakeRestaurants
	meals        fakeMeals
	svc          *service.ReservationService
	reservations *ReservationHandler
	staff        *StaffHandler
	browse       *BrowseHandler
	echo         *echo.Echo
}

func newTestEnv() *testEnv {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	restaurants := fakeRestaurants{
		10: {ID: 10, Name: "Tasca do Manel", Location: "Campus Center", Description: "Traditional Portuguese food"},
		20: {ID: 20, Name: "Pizzaria Bella Italia", Location: "North Campus", Description: "Wood-fired pizzas"},
	}
	meals := fakeMeals{
		1: {ID: 1, RestaurantID: 10, Name: "Bacalhau à Brás", Description: "Shredded cod with potatoes", Date: today, Serving: "dinner", Capacity: 40},
		2: {ID: 2, RestaurantID: 10, Name: "Francesinha", Description: "Porto-style sandwich", Date: today.AddDate(0, 0, 1), Serving: "lunch", Capacity: 2},
		3: {ID: 3, RestaurantID: 20, Name: "Pizza Margherita", Description: "Tomato and mozzarella", Date: today, Serving: "dinner", Capacity: 30},
	}
	svc := service.NewReservationService(meals, repository.NewSeatLedger(), repository.NewReservationStore(), repository.CodeIssuer{}, nil)
	return &testEnv{
		restaurants:  restaurants,
		meals:        meals,
		svc:          svc,
		reservations: &ReservationHandler{Service: svc, Meals: meals, Restaurants: restaurants},
		staff:        &StaffHandler{Service: svc, Meals: meals, Restaurants: restaurants},
		browse:       &BrowseHandler{Restaurants: restaurants, Meals: meals, Service: svc},
		echo:         echo.New(),
	}
}

// request runs a handler against a synthetic request and returns the
// recorder.  params are path parameter name/value pairs.
func (env *testEnv) request(method, target string, query url.Values, h echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	if query != nil {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := h(c); err != nil {
		env.echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// createReservation books through the HTTP handler and fails the test
// on anything but 200.
func (env *testEnv) createReservation(t *testing.T, mealID uint64, partySize int) ReservationResponse {
	t.Helper()
	q := url.Values{}
	q.Set("mealId", strconv.FormatUint(mealID, 10))
	q.Set("partySize", strconv.Itoa(partySize))
	rec := env.request(http.MethodPost, "/api/v1/reservations", q, env.reservations.Create)
	if rec.Code != http.StatusOK {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp ReservationResponse
	decodeBody(t, rec, &resp)
	return resp
}

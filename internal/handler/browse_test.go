package handler

import (
	"net/http"
	"net/url"
	"testing"
)

func TestListRestaurants(t *testing.T) {
	env := newTestEnv()
	rec := env.request(http.MethodGet, "/api/v1/restaurants", nil, env.browse.ListRestaurants)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var list []RestaurantResponse
	decodeBody(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(list))
	}
	// ListAll orders by name.
	if list[0].Name != "Pizzaria Bella Italia" || list[1].Name != "Tasca do Manel" {
		t.Errorf("unexpected ordering: %+v", list)
	}
}

func TestGetRestaurant(t *testing.T) {
	env := newTestEnv()

	rec := env.request(http.MethodGet, "/api/v1/restaurants/10", nil, env.browse.GetRestaurant, "id", "10")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp RestaurantResponse
	decodeBody(t, rec, &resp)
	if resp.Name != "Tasca do Manel" {
		t.Errorf("expected Tasca do Manel, got %q", resp.Name)
	}

	rec = env.request(http.MethodGet, "/api/v1/restaurants/99", nil, env.browse.GetRestaurant, "id", "99")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown restaurant: expected 404, got %d", rec.Code)
	}
}

func TestListMealsReportsRemainingSeats(t *testing.T) {
	env := newTestEnv()
	env.createReservation(t, 1, 5)

	q := url.Values{"restaurantId": {"10"}}
	rec := env.request(http.MethodGet, "/api/v1/meals", q, env.browse.ListMeals)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var meals []MealResponse
	decodeBody(t, rec, &meals)
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals for restaurant 10, got %d", len(meals))
	}
	byID := map[uint64]MealResponse{}
	for _, m := range meals {
		byID[m.ID] = m
	}
	if got := byID[1]; got.Capacity != 40 || got.Remaining != 35 {
		t.Errorf("meal 1: expected capacity 40 remaining 35, got %+v", got)
	}
	if got := byID[2]; got.Remaining != got.Capacity {
		t.Errorf("meal 2: expected untouched capacity, got %+v", got)
	}
}

func TestListMealsValidation(t *testing.T) {
	env := newTestEnv()

	rec := env.request(http.MethodGet, "/api/v1/meals", nil, env.browse.ListMeals)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing restaurantId: expected 400, got %d", rec.Code)
	}

	q := url.Values{"restaurantId": {"99"}}
	rec = env.request(http.MethodGet, "/api/v1/meals", q, env.browse.ListMeals)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown restaurant: expected 404, got %d", rec.Code)
	}

	q = url.Values{"restaurantId": {"10"}, "days": {"-3"}}
	rec = env.request(http.MethodGet, "/api/v1/meals", q, env.browse.ListMeals)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative days: expected 400, got %d", rec.Code)
	}
}

func TestListRestaurantMeals(t *testing.T) {
	env := newTestEnv()
	rec := env.request(http.MethodGet, "/api/v1/restaurants/20/meals", nil, env.browse.ListRestaurantMeals, "id", "20")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var meals []MealResponse
	decodeBody(t, rec, &meals)
	if len(meals) != 1 || meals[0].Name != "Pizza Margherita" {
		t.Errorf("expected the Margherita only, got %+v", meals)
	}
}

func TestWeatherCacheMetrics(t *testing.T) {
	env := newTestEnv()
	m := &MetricsHandler{} // no weather client wired
	rec := env.request(http.MethodGet, "/api/v1/metrics/weather-cache", nil, m.WeatherCache)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats struct {
		Hits   uint64 `json:"hits"`
		Misses uint64 `json:"misses"`
	}
	decodeBody(t, rec, &stats)
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("expected zeroed stats without a client, got %+v", stats)
	}
}

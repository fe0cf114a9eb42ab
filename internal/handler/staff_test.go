package handler

import (
	"net/http"
	"strings"
	"testing"
)

func TestFindByCodeNormalizesInput(t *testing.T) {
	env := newTestEnv()
	created := env.createReservation(t, 1, 2)

	// The desk may type the code in any case, with stray spaces.
	typed := " " + strings.ToLower(created.Token) + " "
	rec := env.request(http.MethodGet, "/api/v1/reservations/code/x", nil, env.staff.FindByCode, "code", typed)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ReservationResponse
	decodeBody(t, rec, &resp)
	if resp.Token != created.Token {
		t.Errorf("expected token %s, got %s", created.Token, resp.Token)
	}

	rec = env.request(http.MethodGet, "/api/v1/reservations/code/x", nil, env.staff.FindByCode, "code", "ZZZZZZ")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown code: expected 404, got %d", rec.Code)
	}
}

func TestUseByCode(t *testing.T) {
	env := newTestEnv()
	created := env.createReservation(t, 1, 2)

	rec := env.request(http.MethodPut, "/api/v1/reservations/code/x/use", nil, env.staff.UseByCode, "code", strings.ToLower(created.Token))
	if rec.Code != http.StatusOK {
		t.Fatalf("check-in: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ReservationResponse
	decodeBody(t, rec, &resp)
	if !resp.Used {
		t.Errorf("expected used=true, got %+v", resp)
	}

	rec = env.request(http.MethodPut, "/api/v1/reservations/code/x/use", nil, env.staff.UseByCode, "code", created.Token)
	if rec.Code != http.StatusConflict {
		t.Errorf("second check-in: expected 409, got %d", rec.Code)
	}
}

func TestUseByCodeAfterCancel(t *testing.T) {
	env := newTestEnv()
	created := env.createReservation(t, 1, 1)
	env.request(http.MethodDelete, "/x", nil, env.reservations.Cancel, "token", created.Token)

	rec := env.request(http.MethodPut, "/api/v1/reservations/code/x/use", nil, env.staff.UseByCode, "code", created.Token)
	if rec.Code != http.StatusConflict {
		t.Errorf("check-in after cancel: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListActiveReservations(t *testing.T) {
	env := newTestEnv()

	first := env.createReservation(t, 1, 2)
	second := env.createReservation(t, 1, 1)
	other := env.createReservation(t, 3, 4) // restaurant 20
	env.request(http.MethodPut, "/use", nil, env.reservations.Use, "token", first.Token)

	rec := env.request(http.MethodGet, "/api/v1/restaurants/10/reservations/active", nil, env.staff.ListActive, "id", "10")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var list []ReservationResponse
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].Token != second.Token {
		t.Errorf("expected only %s active for restaurant 10, got %+v", second.Token, list)
	}

	rec = env.request(http.MethodGet, "/api/v1/restaurants/20/reservations/active", nil, env.staff.ListActive, "id", "20")
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].Token != other.Token {
		t.Errorf("expected only %s active for restaurant 20, got %+v", other.Token, list)
	}
}

func TestListActiveUnknownRestaurant(t *testing.T) {
	env := newTestEnv()
	rec := env.request(http.MethodGet, "/api/v1/restaurants/99/reservations/active", nil, env.staff.ListActive, "id", "99")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	rec = env.request(http.MethodGet, "/api/v1/restaurants/abc/reservations/active", nil, env.staff.ListActive, "id", "abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed id, got %d", rec.Code)
	}
}

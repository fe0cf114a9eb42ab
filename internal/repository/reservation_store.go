package repository

import (
	"sync"
	"time"

	"github.com/mferns/meal-reservation/internal/model"
)

// ReservationStore owns every reservation record for its full
// lifetime.  Records are indexed by normalized code and, secondarily,
// by restaurant so that staff terminals can list the active
// reservations for their venue.  Reservations are never removed:
// cancellation and check-in are status transitions, and students must
// be able to look up a used or cancelled reservation's history.
//
// Locking mirrors the seat ledger: the maps are guarded by one RWMutex
// held only for index access, while each record carries its own mutex
// guarding its status.  Two different reservations therefore never
// contend on check-in or cancellation.
type ReservationStore struct {
	mu           sync.RWMutex
	byCode       map[string]*reservationEntry
	byRestaurant map[uint64][]*reservationEntry
}

type reservationEntry struct {
	mu           sync.Mutex
	res          model.Reservation
	restaurantID uint64
}

// NewReservationStore returns an empty store.  Tests instantiate
// independent stores per case; the server wires exactly one.
func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		byCode:       make(map[string]*reservationEntry),
		byRestaurant: make(map[uint64][]*reservationEntry),
	}
}

// Insert registers a new reservation under its code.  The restaurant
// ID is denormalized here so active listings do not need a catalog
// join.  Returns ErrCodeExists when the code is already taken, which
// the lifecycle engine treats as a signal to draw a new code.
func (s *ReservationStore) Insert(res model.Reservation, restaurantID uint64) error {
	code := NormalizeCode(res.Code)
	if code == "" {
		return ErrInvalidInput
	}
	res.Code = code
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byCode[code]; exists {
		return ErrCodeExists
	}
	e := &reservationEntry{res: res, restaurantID: restaurantID}
	s.byCode[code] = e
	s.byRestaurant[restaurantID] = append(s.byRestaurant[restaurantID], e)
	return nil
}

// GetByCode returns a copy of the reservation for the given code, or
// ErrNotFound.  Input is normalized, so staff can type codes in any
// case.  Reads take the record lock briefly so they always observe a
// fully committed status, never a torn update.
func (s *ReservationStore) GetByCode(code string) (model.Reservation, error) {
	e, err := s.entry(code)
	if err != nil {
		return model.Reservation{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.res, nil
}

// ListActiveForRestaurant returns the CONFIRMED reservations for a
// restaurant.  Each record is copied under its own lock, giving a
// consistent per-record snapshot; the slice order carries no meaning.
func (s *ReservationStore) ListActiveForRestaurant(restaurantID uint64) []model.Reservation {
	s.mu.RLock()
	entries := s.byRestaurant[restaurantID]
	s.mu.RUnlock()
	out := make([]model.Reservation, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.res.Status == model.StatusConfirmed {
			out = append(out, e.res)
		}
		e.mu.Unlock()
	}
	return out
}

// MarkUsed performs the CONFIRMED → USED transition.  Exactly one of
// any number of concurrent callers wins; the rest observe
// ErrAlreadyUsed.  A cancelled reservation reports ErrAlreadyCancelled
// instead, so the check-in desk can tell the two apart.
func (s *ReservationStore) MarkUsed(code string) (model.Reservation, error) {
	e, err := s.entry(code)
	if err != nil {
		return model.Reservation{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.res.Status {
	case model.StatusUsed:
		return model.Reservation{}, ErrAlreadyUsed
	case model.StatusCancelled:
		return model.Reservation{}, ErrAlreadyCancelled
	}
	now := time.Now().UTC()
	e.res.Status = model.StatusUsed
	e.res.UsedAt = &now
	return e.res, nil
}

// Cancel performs the CONFIRMED → CANCELLED transition and returns the
// reservation so the caller can release its seats.  A used reservation
// cannot be cancelled (the seat has been consumed) and reports
// ErrAlreadyUsed; a second cancel reports ErrAlreadyCancelled.  As
// with MarkUsed, concurrent cancels have exactly one winner, which is
// what keeps the ledger release exactly-once.
func (s *ReservationStore) Cancel(code string) (model.Reservation, error) {
	e, err := s.entry(code)
	if err != nil {
		return model.Reservation{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.res.Status {
	case model.StatusUsed:
		return model.Reservation{}, ErrAlreadyUsed
	case model.StatusCancelled:
		return model.Reservation{}, ErrAlreadyCancelled
	}
	now := time.Now().UTC()
	e.res.Status = model.StatusCancelled
	e.res.CancelledAt = &now
	return e.res, nil
}

func (s *ReservationStore) entry(code string) (*reservationEntry, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrInvalidInput
	}
	s.mu.RLock()
	e, ok := s.byCode[code]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mferns/meal-reservation/internal/model"
	q "github.com/mferns/meal-reservation/internal/queue"
	"github.com/mferns/meal-reservation/internal/repository"
)

// MealSource is the slice of the catalog the lifecycle engine needs:
// meal existence, capacity and owning restaurant.  The MySQL MealRepo
// satisfies it in production; tests supply a fixture.
type MealSource interface {
	GetByID(ctx context.Context, id uint64) (*model.Meal, error)
}

// CodeIssuer draws candidate reservation codes.  Satisfied by
// repository.CodeIssuer; tests substitute deterministic issuers to
// exercise the collision path.
type CodeIssuer interface {
	Issue() (string, error)
}

// maxIssueAttempts bounds the issue-insert retry loop.  With a 32^6
// code space a second collision in a row is already vanishingly rare;
// five attempts is comfortably beyond paranoia.
const maxIssueAttempts = 5

// ReservationService is the lifecycle engine: it orchestrates creation,
// check-in, cancellation and lookup, coordinating the seat ledger and
// the reservation store so that no partial effect ever survives an
// error.  All state transitions themselves are guarded inside the
// store and ledger; this layer sequences them and compensates.
type ReservationService struct {
	meals     MealSource
	ledger    *repository.SeatLedger
	store     *repository.ReservationStore
	issuer    CodeIssuer
	publisher EventPublisher // optional; nil disables events
}

// NewReservationService constructs the lifecycle engine.  publisher
// may be nil when no broker is configured.
func NewReservationService(meals MealSource, ledger *repository.SeatLedger, store *repository.ReservationStore, issuer CodeIssuer, publisher EventPublisher) *ReservationService {
	return &ReservationService{
		meals:     meals,
		ledger:    ledger,
		store:     store,
		issuer:    issuer,
		publisher: publisher,
	}
}

// Create books partySize seats at a meal and returns the CONFIRMED
// reservation.  The order of operations is deliberate: the seat is
// claimed first, then a code is issued and the record inserted; any
// failure after the claim releases the seat again, so a failed insert
// can never strand capacity.  On a full meal it returns
// ErrCapacityExhausted without touching the store.
func (s *ReservationService) Create(ctx context.Context, mealID uint64, partySize int) (model.Reservation, error) {
	if partySize < 1 {
		return model.Reservation{}, fmt.Errorf("%w: party size must be at least 1", repository.ErrInvalidInput)
	}
	meal, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := s.ledger.TryReserve(meal.ID, meal.Capacity, partySize); err != nil {
		return model.Reservation{}, err
	}

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		code, err := s.issuer.Issue()
		if err != nil {
			s.ledger.Release(meal.ID, partySize)
			return model.Reservation{}, fmt.Errorf("issue code: %w", err)
		}
		res := model.Reservation{
			Code:      code,
			MealID:    meal.ID,
			PartySize: partySize,
			Status:    model.StatusConfirmed,
			CreatedAt: time.Now().UTC(),
		}
		err = s.store.Insert(res, meal.RestaurantID)
		if errors.Is(err, repository.ErrCodeExists) {
			continue
		}
		if err != nil {
			s.ledger.Release(meal.ID, partySize)
			return model.Reservation{}, err
		}
		s.publish(ctx, q.KindConfirmed, res, meal.RestaurantID)
		return res, nil
	}

	// Every draw collided.  Give the seat back and fail cleanly.
	s.ledger.Release(meal.ID, partySize)
	return model.Reservation{}, fmt.Errorf("could not allocate a unique reservation code: %w", repository.ErrCodeExists)
}

// Use checks a reservation in by code.  Exactly one of any number of
// concurrent calls on the same code succeeds; the rest observe
// ErrAlreadyUsed.  Check-in never touches the ledger — the seat stays
// consumed.
func (s *ReservationService) Use(ctx context.Context, code string) (model.Reservation, error) {
	res, err := s.store.MarkUsed(code)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, q.KindUsed, res, 0)
	return res, nil
}

// Cancel cancels a reservation by code and returns its seats to the
// pool.  The store transition has exactly one winner, and only the
// winner releases, which is what makes the release exactly-once even
// under concurrent cancels.  A used reservation cannot be cancelled.
func (s *ReservationService) Cancel(ctx context.Context, code string) (model.Reservation, error) {
	res, err := s.store.Cancel(code)
	if err != nil {
		return model.Reservation{}, err
	}
	s.ledger.Release(res.MealID, res.PartySize)
	s.publish(ctx, q.KindCancelled, res, 0)
	return res, nil
}

// Lookup returns a reservation by code without any lock discipline
// beyond the store's own read path.  Used and cancelled reservations
// remain visible here forever.
func (s *ReservationService) Lookup(code string) (model.Reservation, error) {
	return s.store.GetByCode(code)
}

// ActiveForRestaurant lists the CONFIRMED reservations a staff
// terminal should see for its venue.
func (s *ReservationService) ActiveForRestaurant(restaurantID uint64) []model.Reservation {
	return s.store.ListActiveForRestaurant(restaurantID)
}

// Remaining reports how many seats of a meal are still bookable.
func (s *ReservationService) Remaining(meal *model.Meal) int {
	remaining := meal.Capacity - s.ledger.Reserved(meal.ID)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// publish sends a lifecycle event when a publisher is configured.
// Failures are logged and swallowed; events are observability, not
// state.
func (s *ReservationService) publish(ctx context.Context, kind string, res model.Reservation, restaurantID uint64) {
	if s.publisher == nil {
		return
	}
	if restaurantID == 0 {
		if meal, err := s.meals.GetByID(ctx, res.MealID); err == nil {
			restaurantID = meal.RestaurantID
		}
	}
	ev := q.ReservationEvent{
		EventID:      uuid.New().String(),
		Kind:         kind,
		Code:         res.Code,
		MealID:       res.MealID,
		RestaurantID: restaurantID,
		PartySize:    res.PartySize,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("reservation event publish failed (kind=%s code=%s): %v", kind, res.Code, err)
	}
}

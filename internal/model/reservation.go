package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.  The only
// legal transitions are CONFIRMED → USED and CONFIRMED → CANCELLED;
// both targets are terminal.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusUsed      ReservationStatus = "USED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation records a student's claim on seats at a meal.  The code
// doubles as the primary key and as the value read aloud at the
// check-in desk, so it is short, uppercase, and drawn from an alphabet
// without visually confusable characters.  Reservations are never
// deleted: a used or cancelled reservation stays queryable forever.
//
// Fields:
//  Code        – unique human-typeable identifier, immutable.
//  MealID      – meal being reserved, immutable.
//  PartySize   – number of seats claimed, immutable, at least 1.
//  Status      – lifecycle state, mutated only by the lifecycle engine.
//  CreatedAt   – creation timestamp.
//  UsedAt      – set when the reservation is checked in.
//  CancelledAt – set when the reservation is cancelled.
type Reservation struct {
	Code        string
	MealID      uint64
	PartySize   int
	Status      ReservationStatus
	CreatedAt   time.Time
	UsedAt      *time.Time
	CancelledAt *time.Time
}

// Used reports whether the reservation has been checked in.  Exposed
// as a helper because several response shapes carry a boolean `used`
// field alongside the full status.
func (r *Reservation) Used() bool {
	return r.Status == StatusUsed
}

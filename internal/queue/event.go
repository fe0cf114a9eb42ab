// Package queue defines the reservation event payloads exchanged over
// the message broker and the background consumer that turns them into
// an audit log.
package queue

// Event kinds published to the reservation.events queue.
const (
	KindConfirmed = "confirmed"
	KindUsed      = "used"
	KindCancelled = "cancelled"
)

// QueueName is the durable queue all reservation events flow through.
const QueueName = "reservation.events"

// ReservationEvent is published whenever a reservation is confirmed,
// checked in or cancelled.  It carries enough for downstream consumers
// to log or notify without querying the service.
type ReservationEvent struct {
	EventID      string `json:"event_id"`
	Kind         string `json:"kind"`
	Code         string `json:"code"`
	MealID       uint64 `json:"meal_id"`
	RestaurantID uint64 `json:"restaurant_id"`
	PartySize    int    `json:"party_size"`
	OccurredAt   string `json:"occurred_at"`
}

package repository

import "sync"

// SeatLedger is the sole authority on how many seats of each meal are
// currently reserved.  Capacity itself is owned by the catalog and
// passed in on every reserve attempt; the ledger only tracks the
// reserved count and enforces 0 ≤ reserved ≤ capacity.
//
// Locking is per meal: each meal has its own counter with its own
// mutex, so bookings against different meals never contend.  The
// outer map lock is held only long enough to find or create a
// counter.
type SeatLedger struct {
	mu    sync.RWMutex
	meals map[uint64]*mealCounter
}

type mealCounter struct {
	mu       sync.Mutex
	reserved int
}

// NewSeatLedger returns an empty ledger.  Counters are created lazily
// on first use, so meals never booked cost nothing.
func NewSeatLedger() *SeatLedger {
	return &SeatLedger{meals: make(map[uint64]*mealCounter)}
}

// counter returns the counter for a meal, creating it if needed.
func (l *SeatLedger) counter(mealID uint64) *mealCounter {
	l.mu.RLock()
	c, ok := l.meals[mealID]
	l.mu.RUnlock()
	if ok {
		return c
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok = l.meals[mealID]; ok {
		return c
	}
	c = &mealCounter{}
	l.meals[mealID] = c
	return c
}

// TryReserve atomically checks that partySize seats fit under capacity
// and claims them.  On a full meal it returns ErrCapacityExhausted and
// leaves the count untouched.  The check and the increment happen
// under the meal's own mutex, so two racing bookings against the last
// seat serialize and exactly one wins.
func (l *SeatLedger) TryReserve(mealID uint64, capacity, partySize int) error {
	if partySize < 1 {
		return ErrInvalidInput
	}
	c := l.counter(mealID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reserved+partySize > capacity {
		return ErrCapacityExhausted
	}
	c.reserved += partySize
	return nil
}

// Release returns partySize seats to the pool.  It must be called
// exactly once per successfully created reservation that is later
// cancelled — never on check-in and never twice — or the ledger would
// manufacture phantom capacity.  The lifecycle engine guarantees this
// by only releasing after a CONFIRMED → CANCELLED transition it won.
func (l *SeatLedger) Release(mealID uint64, partySize int) {
	c := l.counter(mealID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reserved -= partySize
	if c.reserved < 0 {
		c.reserved = 0
	}
}

// Reserved reports the current reserved count for a meal.  Used by
// meal listings to compute remaining seats.
func (l *SeatLedger) Reserved(mealID uint64) int {
	c := l.counter(mealID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reserved
}

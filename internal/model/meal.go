package model

import "time"

// Meal represents one bookable sitting at a restaurant: a dish served
// on a given date at a given serving (lunch or dinner) with a fixed
// number of seats.  Capacity is owned by the catalog and never changes
// after the meal is created; the number of seats currently reserved is
// tracked separately by the seat ledger.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – restaurant serving the meal.
//  Name         – dish name.
//  Description  – dish description.
//  Date         – calendar date the meal is served (midnight UTC).
//  Serving      – "lunch" or "dinner".
//  Capacity     – total seats available, fixed at creation.
type Meal struct {
	ID           uint64    // meals.id
	RestaurantID uint64    // meals.restaurant_id
	Name         string    // meals.name
	Description  string    // meals.description
	Date         time.Time // meals.available_date
	Serving      string    // meals.serving
	Capacity     int       // meals.capacity
}

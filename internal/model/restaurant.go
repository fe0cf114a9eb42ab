package model

// Restaurant represents a campus dining venue that serves bookable
// meals.  Restaurants are catalog data: they are created and edited
// outside this service and read here for browsing and for naming
// reservations.  This struct corresponds to a row in the
// `restaurants` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the restaurant.
//  Location    – free-form location text shown to students.
//  Description – optional longer description.
type Restaurant struct {
	ID          uint64 // restaurants.id
	Name        string // restaurants.name
	Location    string // restaurants.location
	Description string // restaurants.description
}

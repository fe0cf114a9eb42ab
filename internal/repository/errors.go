// Package repository holds the storage layer: the in-memory
// reservation engine (seat ledger, reservation store, code issuer) and
// the MySQL-backed restaurant/meal catalog.  This file defines the
// sentinel errors shared across the package so that higher layers such
// as handlers can distinguish failure scenarios with errors.Is.  For
// example, ErrCapacityExhausted signals a booking attempt against a
// full meal, while ErrAlreadyUsed signals a check-in or cancellation
// attempt on a reservation that has already been consumed.
package repository

import "errors"

// ErrNotFound is returned when a requested restaurant, meal or
// reservation does not exist.  Handlers should translate this into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrCapacityExhausted is returned by the seat ledger when a meal has
// no remaining seats for the requested party size.  The booking is
// rejected without any state change.  Handlers should translate this
// into an HTTP 409 response.
var ErrCapacityExhausted = errors.New("meal capacity exhausted")

// ErrAlreadyUsed is returned when a reservation has already been
// checked in.  A used reservation can be neither used again nor
// cancelled.
var ErrAlreadyUsed = errors.New("reservation already used")

// ErrAlreadyCancelled is returned when a reservation has already been
// cancelled.  A cancelled reservation can be neither used nor
// cancelled again.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")

// ErrCodeExists is returned by the reservation store when an insert
// collides with an existing code.  The lifecycle engine reacts by
// drawing a fresh code and retrying.
var ErrCodeExists = errors.New("reservation code already exists")

// ErrInvalidInput is returned for malformed requests such as an empty
// code or a non-positive party size.  Handlers should translate this
// into an HTTP 400 response.
var ErrInvalidInput = errors.New("invalid input")

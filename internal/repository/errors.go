// Package repository holds the pgx-backed storage layer. Sentinel errors
// below let the service layer distinguish storage outcomes without parsing
// driver errors itself.
package repository

import "errors"

// ErrDuplicateActiveBooking is returned when the partial unique index on
// active (flight, passenger) pairs rejects an insert. It backstops the
// in-transaction duplicate check against concurrent requests.
var ErrDuplicateActiveBooking = errors.New("passenger already has an active booking on this flight")

// ErrSeatTaken is returned when the partial unique index on active
// (flight, class, seat number) rejects an insert. With reservations
// serialized on the flight row this should not happen; it is surfaced
// rather than swallowed so a consistency bug fails loudly.
var ErrSeatTaken = errors.New("seat number already taken on this flight")

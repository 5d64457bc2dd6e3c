package domain

import (
	"regexp"
	"strings"
	"time"
)

// Passenger is identified by passport number. Created on first booking and
// reused on later bookings carrying the same passport; the booking engine
// never updates an existing passenger.
type Passenger struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	PassportNumber string    `json:"passport_number"`
	Nationality    string    `json:"nationality"`
	Gender         string    `json:"gender"`
	Phone          string    `json:"phone"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	CreatedAt      time.Time `json:"created_at"`
}

var passportPattern = regexp.MustCompile(`^[A-Z0-9]{5,20}$`)

// NormalizePassport upper-cases and trims a passport number so the same
// document always maps to the same passenger row.
func NormalizePassport(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func ValidPassport(s string) bool {
	return passportPattern.MatchString(NormalizePassport(s))
}

package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

// Flight carries three independent seat-class counters. Capacity and prices
// are fixed when the flight is created from the aircraft and route reference
// data; the available counters are mutated only by the booking engine.
type Flight struct {
	ID            int64        `json:"id"`
	FlightNumber  string       `json:"flight_number"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureTime time.Time    `json:"departure_time"`
	ArrivalTime   time.Time    `json:"arrival_time"`
	Status        FlightStatus `json:"status"`

	EconomyCapacity  int `json:"economy_capacity"`
	BusinessCapacity int `json:"business_capacity"`
	FirstCapacity    int `json:"first_capacity"`

	EconomyAvailable  int `json:"economy_available"`
	BusinessAvailable int `json:"business_available"`
	FirstAvailable    int `json:"first_available"`

	EconomyPriceCents  int64 `json:"economy_price_cents"`
	BusinessPriceCents int64 `json:"business_price_cents"`
	FirstPriceCents    int64 `json:"first_price_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Flight) Capacity(c SeatClass) int {
	switch c {
	case SeatClassEconomy:
		return f.EconomyCapacity
	case SeatClassBusiness:
		return f.BusinessCapacity
	case SeatClassFirstClass:
		return f.FirstCapacity
	}
	return 0
}

func (f *Flight) Available(c SeatClass) int {
	switch c {
	case SeatClassEconomy:
		return f.EconomyAvailable
	case SeatClassBusiness:
		return f.BusinessAvailable
	case SeatClassFirstClass:
		return f.FirstAvailable
	}
	return 0
}

// PriceCents is the per-class fare captured onto a booking at creation time.
func (f *Flight) PriceCents(c SeatClass) int64 {
	switch c {
	case SeatClassEconomy:
		return f.EconomyPriceCents
	case SeatClassBusiness:
		return f.BusinessPriceCents
	case SeatClassFirstClass:
		return f.FirstPriceCents
	}
	return 0
}

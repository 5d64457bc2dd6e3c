package domain

type SeatClass string

const (
	SeatClassEconomy    SeatClass = "ECONOMY"
	SeatClassBusiness   SeatClass = "BUSINESS"
	SeatClassFirstClass SeatClass = "FIRST_CLASS"
)

// SeatClasses lists every class in a stable order. Cascade cancellation and
// reconciliation iterate this slice instead of a map so their output is
// deterministic.
var SeatClasses = []SeatClass{SeatClassEconomy, SeatClassBusiness, SeatClassFirstClass}

func (c SeatClass) Valid() bool {
	switch c {
	case SeatClassEconomy, SeatClassBusiness, SeatClassFirstClass:
		return true
	}
	return false
}

// Letter is the class prefix used in seat labels, e.g. "1E".
func (c SeatClass) Letter() string {
	switch c {
	case SeatClassEconomy:
		return "E"
	case SeatClassBusiness:
		return "B"
	case SeatClassFirstClass:
		return "F"
	}
	return "?"
}

func ParseSeatClass(s string) (SeatClass, error) {
	c := SeatClass(s)
	if !c.Valid() {
		return "", ErrInvalidSeatClass
	}
	return c, nil
}

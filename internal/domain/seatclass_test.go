package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatClass(t *testing.T) {
	for _, class := range SeatClasses {
		parsed, err := ParseSeatClass(string(class))
		require.NoError(t, err)
		assert.Equal(t, class, parsed)
	}

	_, err := ParseSeatClass("PREMIUM_ECONOMY")
	assert.Error(t, err)

	_, err = ParseSeatClass("economy")
	assert.Error(t, err)
}

func TestSeatClassLetter(t *testing.T) {
	assert.Equal(t, "E", SeatClassEconomy.Letter())
	assert.Equal(t, "B", SeatClassBusiness.Letter())
	assert.Equal(t, "F", SeatClassFirstClass.Letter())
}

func TestFlightAccessorsByClass(t *testing.T) {
	f := &Flight{
		EconomyCapacity: 100, BusinessCapacity: 20, FirstCapacity: 4,
		EconomyAvailable: 60, BusinessAvailable: 5, FirstAvailable: 0,
		EconomyPriceCents: 15000, BusinessPriceCents: 45000, FirstPriceCents: 120000,
	}

	assert.Equal(t, 100, f.Capacity(SeatClassEconomy))
	assert.Equal(t, 20, f.Capacity(SeatClassBusiness))
	assert.Equal(t, 4, f.Capacity(SeatClassFirstClass))

	assert.Equal(t, 60, f.Available(SeatClassEconomy))
	assert.Equal(t, 0, f.Available(SeatClassFirstClass))

	assert.Equal(t, int64(45000), f.PriceCents(SeatClassBusiness))
	assert.Equal(t, 0, f.Capacity(SeatClass("UNKNOWN")))
}

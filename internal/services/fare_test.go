package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJitterFareRange(t *testing.T) {
	f := NewJitterFare(7)
	for i := 0; i < 500; i++ {
		plain := f.Fare(FareInput{BusType: "standard"})
		assert.GreaterOrEqual(t, plain, 25.0)
		assert.LessOrEqual(t, plain, 35.0)
		assert.Equal(t, plain, float64(int(plain)), "jitter is a whole amount")

		ac := f.Fare(FareInput{AC: true})
		assert.GreaterOrEqual(t, ac, 35.0)
		assert.LessOrEqual(t, ac, 45.0)
	}
}

func TestJitterFareTypeACCountsAsAC(t *testing.T) {
	f := NewJitterFare(1)
	fare := f.Fare(FareInput{BusType: "AC"})
	assert.GreaterOrEqual(t, fare, 35.0)
}

func TestJitterFareIgnoresStops(t *testing.T) {
	lo, hi := NewJitterFare(1).Range(FareInput{BoardingOrder: 1, DroppingOrder: 9})
	assert.Equal(t, 25.0, lo)
	assert.Equal(t, 35.0, hi)
}

func TestJitterFareSeedIsReproducible(t *testing.T) {
	a, b := NewJitterFare(99), NewJitterFare(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Fare(FareInput{}), b.Fare(FareInput{}))
	}
}

func TestStopCountFare(t *testing.T) {
	f := StopCountFare{}
	assert.Equal(t, 25.0, f.Fare(FareInput{BoardingOrder: 1, DroppingOrder: 2}))
	assert.Equal(t, 45.0, f.Fare(FareInput{AC: true, BoardingOrder: 1, DroppingOrder: 4}))
	assert.Equal(t, 20.0, f.Fare(FareInput{}))
}

func TestNewFareStrategy(t *testing.T) {
	f, err := NewFareStrategy("", 0)
	require.NoError(t, err)
	assert.Equal(t, FareModeLegacy, f.Name())

	f, err = NewFareStrategy("Distance", 0)
	require.NoError(t, err)
	assert.Equal(t, FareModeDistance, f.Name())

	_, err = NewFareStrategy("surge", 0)
	assert.Error(t, err)
}

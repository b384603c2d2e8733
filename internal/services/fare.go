package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	FareBase        = 20.00
	FareACSurcharge = 10.00
	FareJitterMin   = 5
	FareJitterMax   = 15
	FarePerStop     = 5.00

	FareModeLegacy   = "legacy"
	FareModeDistance = "distance"
)

// FareInput carries what a fare policy may look at.
type FareInput struct {
	BusType       string
	AC            bool
	BoardingOrder int
	DroppingOrder int
}

func (in FareInput) airConditioned() bool {
	return in.AC || strings.EqualFold(strings.TrimSpace(in.BusType), "ac")
}

// FareStrategy prices one seat. Range reports the lowest and highest fare
// Fare can return for in, equal when the policy is deterministic.
type FareStrategy interface {
	Fare(in FareInput) float64
	Range(in FareInput) (float64, float64)
	Name() string
}

// JitterFare charges the base fare, the AC surcharge and a random whole amount
// in [FareJitterMin, FareJitterMax]. Stop positions are ignored.
type JitterFare struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitterFare seeds the generator; seed 0 uses the clock.
func NewJitterFare(seed int64) *JitterFare {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &JitterFare{rng: rand.New(rand.NewSource(seed))}
}

func (f *JitterFare) Fare(in FareInput) float64 {
	fare := FareBase
	if in.airConditioned() {
		fare += FareACSurcharge
	}
	f.mu.Lock()
	jitter := FareJitterMin + f.rng.Intn(FareJitterMax-FareJitterMin+1)
	f.mu.Unlock()
	return fare + float64(jitter)
}

func (f *JitterFare) Range(in FareInput) (float64, float64) {
	fare := FareBase
	if in.airConditioned() {
		fare += FareACSurcharge
	}
	return fare + FareJitterMin, fare + FareJitterMax
}

func (f *JitterFare) Name() string { return FareModeLegacy }

// StopCountFare charges the base fare, the AC surcharge and FarePerStop for
// every stop travelled.
type StopCountFare struct{}

func (StopCountFare) Fare(in FareInput) float64 {
	fare := FareBase
	if in.airConditioned() {
		fare += FareACSurcharge
	}
	if hops := in.DroppingOrder - in.BoardingOrder; hops > 0 {
		fare += FarePerStop * float64(hops)
	}
	return fare
}

func (s StopCountFare) Range(in FareInput) (float64, float64) {
	f := s.Fare(in)
	return f, f
}

func (StopCountFare) Name() string { return FareModeDistance }

// NewFareStrategy picks the policy configured by FARE_MODE.
func NewFareStrategy(mode string, seed int64) (FareStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", FareModeLegacy:
		return NewJitterFare(seed), nil
	case FareModeDistance:
		return StopCountFare{}, nil
	}
	return nil, fmt.Errorf("unknown fare mode %q", mode)
}

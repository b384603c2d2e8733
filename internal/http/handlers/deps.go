package handlers

import (
	"sync"
	"time"

	intconfig "transitbook/internal/config"
	"transitbook/internal/services"
	"transitbook/internal/utils"
)

var (
	depsMu    sync.RWMutex
	fares     services.FareStrategy
	jwtSecret []byte
	clock     utils.Clock
)

// Configure sets the handler dependencies derived from env.
func Configure(env intconfig.Env) error {
	strategy, err := services.NewFareStrategy(env.FareMode, env.FareSeed)
	if err != nil {
		return err
	}
	depsMu.Lock()
	defer depsMu.Unlock()
	fares = strategy
	jwtSecret = []byte(env.JWTSecret)
	clock = time.Now
	return nil
}

// SetClock pins the time used for availability checks.
func SetClock(c utils.Clock) {
	depsMu.Lock()
	defer depsMu.Unlock()
	clock = c
}

// SetFareStrategy replaces the configured fare policy.
func SetFareStrategy(f services.FareStrategy) {
	depsMu.Lock()
	defer depsMu.Unlock()
	fares = f
}

func currentFares() services.FareStrategy {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return fares
}

func currentClock() utils.Clock {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return clock
}

func currentSecret() []byte {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return jwtSecret
}

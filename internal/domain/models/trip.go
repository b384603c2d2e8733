package models

import (
	"time"

	"transitbook/internal/domain"
)

type Trip struct {
	ID        int64             `json:"trip_id"`
	RouteID   *int64            `json:"route_id"`
	BusID     *int64            `json:"bus_id"`
	DriverID  *int64            `json:"driver_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Frequency string            `json:"frequency"`
	Status    domain.TripStatus `json:"status"`
}

// TripView is a trip joined with its route, bus and driver descriptors.
type TripView struct {
	Trip
	RouteName  string `json:"route_name"`
	BusNo      string `json:"bus_no"`
	BusType    string `json:"type"`
	AC         bool   `json:"ac"`
	DriverName string `json:"driver_name"`
}

// Bookable reports whether tickets may be sold for the trip on the given day.
func (t Trip) Bookable(startOfToday time.Time) bool {
	return t.Status == domain.TripScheduled && !t.StartTime.Before(startOfToday)
}

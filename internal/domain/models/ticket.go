package models

import (
	"time"

	"transitbook/internal/domain"
)

type Passenger struct {
	ID        int64  `json:"passenger_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	ContactNo string `json:"contact_no"`
	Email     string `json:"email_id"`
}

type Ticket struct {
	ID             int64         `json:"ticket_id"`
	TripID         *int64        `json:"trip_id"`
	PassengerID    *int64        `json:"passenger_id"`
	BoardingStopID *int64        `json:"boarding_stop_id"`
	DroppingStopID *int64        `json:"dropping_stop_id"`
	SeatNo         string        `json:"seat_no"`
	Fare           float64       `json:"fare"`
	Gender         domain.Gender `json:"gender"`
	CreatedAt      time.Time     `json:"created_at"`
}

// TicketView is a ticket joined with names for display and lookup.
type TicketView struct {
	Ticket
	RouteName      string    `json:"route_name"`
	BoardingStop   string    `json:"boarding_stop"`
	DroppingStop   string    `json:"dropping_stop"`
	PassengerName  string    `json:"passenger_name"`
	PassengerPhone string    `json:"contact_no"`
	BusNo          string    `json:"bus_no"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

type TicketLogEntry struct {
	ID       int64     `json:"log_id"`
	TicketID *int64    `json:"ticket_id"`
	TripID   *int64    `json:"trip_id"`
	LogTime  time.Time `json:"log_time"`
	Action   string    `json:"action"`
}

// TicketUpdate supports PATCH-style updates via key presence.
type TicketUpdate struct {
	SeatNo *string        `json:"seat_no"`
	Fare   *float64       `json:"fare"`
	Gender *domain.Gender `json:"gender"`
}

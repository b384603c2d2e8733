package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

// SeatPrefix is the row letter of every seat label.
const SeatPrefix = "A"

// SeatLabels returns A1..A<capacity>.
func SeatLabels(capacity int) []string {
	if capacity <= 0 {
		return []string{}
	}
	out := make([]string, 0, capacity)
	for i := 1; i <= capacity; i++ {
		out = append(out, SeatPrefix+strconv.Itoa(i))
	}
	return out
}

// ValidSeat reports whether label is inside the seat space of a bus with capacity seats.
func ValidSeat(label string, capacity int) bool {
	label = utils.NormalizeSeat(label)
	if len(label) < 2 || label[:1] != SeatPrefix {
		return false
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil || label[1] == '0' {
		return false
	}
	return n >= 1 && n <= capacity
}

// FreeSeats removes taken labels from A1..A<capacity>, keeping label order.
func FreeSeats(capacity int, taken []string) []string {
	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[utils.NormalizeSeat(t)] = struct{}{}
	}
	out := []string{}
	for _, label := range SeatLabels(capacity) {
		if _, ok := used[label]; !ok {
			out = append(out, label)
		}
	}
	return out
}

// SeatMap describes the seat space of one trip.
type SeatMap struct {
	TripID    int64    `json:"trip_id"`
	Capacity  int      `json:"capacity"`
	Taken     []string `json:"taken"`
	Available []string `json:"available"`
}

// SeatAllocator computes free seats from the bus capacity and the tickets
// already sold. It runs on the pool or on an open transaction.
type SeatAllocator struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (a SeatAllocator) trips() repositories.TripRepository {
	return repositories.TripRepository{DB: a.DB}.WithTx(a.Tx)
}

func (a SeatAllocator) tickets() repositories.TicketRepository {
	return repositories.TicketRepository{DB: a.DB}.WithTx(a.Tx)
}

// AvailableSeats returns the free seat labels in order. A missing trip or a
// trip without a bus has no seats, so the result is empty.
func (a SeatAllocator) AvailableSeats(ctx context.Context, tripID int64) ([]string, error) {
	m, err := a.SeatMap(ctx, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []string{}, nil
		}
		return nil, err
	}
	return m.Available, nil
}

// SeatMap returns capacity, taken and free labels. sql.ErrNoRows means the trip does not exist.
func (a SeatAllocator) SeatMap(ctx context.Context, tripID int64) (SeatMap, error) {
	ts, err := a.trips().GetSeating(ctx, tripID, false)
	if err != nil {
		return SeatMap{TripID: tripID, Taken: []string{}, Available: []string{}}, err
	}
	return a.seatMapFor(ctx, ts)
}

func (a SeatAllocator) seatMapFor(ctx context.Context, ts repositories.TripSeating) (SeatMap, error) {
	m := SeatMap{TripID: ts.ID, Taken: []string{}, Available: []string{}}
	if !ts.HasBus {
		return m, nil
	}
	taken, err := a.tickets().SeatsTaken(ctx, ts.ID)
	if err != nil {
		return m, err
	}
	m.Capacity = ts.Capacity
	m.Taken = taken
	m.Available = FreeSeats(ts.Capacity, taken)
	return m, nil
}

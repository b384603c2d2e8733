package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatLabels(t *testing.T) {
	assert.Equal(t, []string{"A1", "A2", "A3"}, SeatLabels(3))
	assert.Empty(t, SeatLabels(0))
	assert.Len(t, SeatLabels(40), 40)
}

func TestFreeSeatsKeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"A1", "A3", "A5"}, FreeSeats(5, []string{"A4", "a2"}))
	assert.Equal(t, []string{}, FreeSeats(2, []string{"A1", "A2"}))
}

func TestValidSeat(t *testing.T) {
	assert.True(t, ValidSeat("A1", 2))
	assert.True(t, ValidSeat(" a2 ", 2))
	assert.False(t, ValidSeat("A3", 2))
	assert.False(t, ValidSeat("A0", 2))
	assert.False(t, ValidSeat("A01", 2))
	assert.False(t, ValidSeat("B1", 2))
	assert.False(t, ValidSeat("A", 2))
}

func seatingQuery(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`FROM trips t\s+LEFT JOIN buses b`).WithArgs(testTripID).WillReturnRows(rows)
}

func TestAvailableSeatsEmptyTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seatingQuery(mock, tripSeatingRows("scheduled", int64(40), false))
	expectTakenSeats(mock)

	seats, err := SeatAllocator{DB: db}.AvailableSeats(context.Background(), testTripID)
	require.NoError(t, err)
	assert.Equal(t, SeatLabels(40), seats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeatsExcludesSold(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seatingQuery(mock, tripSeatingRows("scheduled", int64(2), false))
	expectTakenSeats(mock, "A1")

	seats, err := SeatAllocator{DB: db}.AvailableSeats(context.Background(), testTripID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, seats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeatsMissingTripOrBus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seatingQuery(mock, sqlmock.NewRows([]string{"trip_id"}))
	seats, err := SeatAllocator{DB: db}.AvailableSeats(context.Background(), testTripID)
	require.NoError(t, err)
	assert.Empty(t, seats)

	seatingQuery(mock, tripSeatingRows("scheduled", nil, false))
	seats, err = SeatAllocator{DB: db}.AvailableSeats(context.Background(), testTripID)
	require.NoError(t, err)
	assert.Empty(t, seats)

	require.NoError(t, mock.ExpectationsWereMet())
}

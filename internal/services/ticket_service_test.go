package services

import (
	"context"
	"testing"
	"time"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketViewColumns = []string{
	"ticket_id", "trip_id", "passenger_id", "boarding_stop_id", "dropping_stop_id",
	"seat_no", "fare", "gender", "created_at",
	"route_name", "boarding_stop", "dropping_stop",
	"passenger_name", "contact_no", "bus_no",
	"start_time", "end_time",
}

func ticketViewRow(id int64, seat, contact string) *sqlmock.Rows {
	start := testNow.Add(2 * time.Hour)
	return sqlmock.NewRows(ticketViewColumns).AddRow(
		id, testTripID, int64(7), stopCentral, stopUniversity,
		seat, 30.0, "female", testNow,
		"Central Loop", "Central", "University",
		"Asha Rao", contact, "KA-01-1234",
		start, start.Add(time.Hour),
	)
}

func TestCancelWithMatchingContact(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tickets WHERE ticket_id = \? AND passenger_id IN \(SELECT passenger_id FROM passengers WHERE contact_no = \?\)`).
		WithArgs(int64(11), "9876543210").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = TicketService{DB: db}.Cancel(context.Background(), 11, " 9876543210 ")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelWithOtherContactIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tickets WHERE ticket_id = \? AND passenger_id IN`).
		WithArgs(int64(11), "1111111111").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = TicketService{DB: db}.Cancel(context.Background(), 11, "1111111111")
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRequiresContact(t *testing.T) {
	err := TicketService{}.Cancel(context.Background(), 11, " ")
	assert.True(t, domain.IsValidation(err))
}

func TestLookupRequiresContact(t *testing.T) {
	_, err := TicketService{}.Lookup(context.Background(), "  ")
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateSeatToTakenSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM tickets tk.*WHERE tk.ticket_id = \?`).WithArgs(int64(11)).
		WillReturnRows(ticketViewRow(11, "A1", "9876543210"))
	mock.ExpectQuery(`FROM trips t\s+LEFT JOIN buses b`).WithArgs(testTripID).
		WillReturnRows(tripSeatingRows("scheduled", int64(4), false))
	expectTakenSeats(mock, "A1", "A3")

	seat := "a3"
	_, err = TicketService{DB: db}.Update(context.Background(), 11, models.TicketUpdate{SeatNo: &seat})
	assert.ErrorIs(t, err, domain.ErrSeatTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFareOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM tickets tk.*WHERE tk.ticket_id = \?`).WithArgs(int64(11)).
		WillReturnRows(ticketViewRow(11, "A1", "9876543210"))
	mock.ExpectExec(`UPDATE tickets SET fare = \? WHERE ticket_id = \?`).WithArgs(42.5, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM tickets tk.*WHERE tk.ticket_id = \?`).WithArgs(int64(11)).
		WillReturnRows(ticketViewRow(11, "A1", "9876543210"))

	fare := 42.5
	_, err = TicketService{DB: db}.Update(context.Background(), 11, models.TicketUpdate{Fare: &fare})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

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

func TestRecordPathRejects(t *testing.T) {
	arrival := testNow
	early := testNow.Add(-time.Minute)

	cases := map[string]models.PathEntry{
		"missing trip":        {StopID: stopNorth},
		"missing stop":        {TripID: testTripID},
		"negative people in":  {TripID: testTripID, StopID: stopNorth, PeopleIn: -1},
		"negative people out": {TripID: testTripID, StopID: stopNorth, PeopleOut: -2},
		"negative money":      {TripID: testTripID, StopID: stopNorth, MoneyCollected: -0.5},
		"departs before arrival": {
			TripID: testTripID, StopID: stopNorth, ArrivalTime: &arrival, DepartureTime: &early,
		},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := OperationsService{}.RecordPath(context.Background(), p)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestRecordAndListPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	arrival := testNow
	departure := testNow.Add(2 * time.Minute)
	mock.ExpectExec(`INSERT INTO path`).
		WithArgs(testTripID, stopNorth, arrival, departure, 4, 1, 120.46).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery(`FROM path p LEFT JOIN stops s ON p.stop_id = s.stop_id WHERE p.trip_id = \?`).
		WithArgs(testTripID).
		WillReturnRows(sqlmock.NewRows([]string{
			"path_id", "trip_id", "stop_id", "stop_name",
			"arrival_time", "departure_time", "people_in", "people_out", "money_collected",
		}).AddRow(int64(21), testTripID, stopNorth, "North", arrival, departure, 4, 1, 120.46))

	svc := OperationsService{DB: db}
	rec, err := svc.RecordPath(context.Background(), models.PathEntry{
		TripID: testTripID, StopID: stopNorth,
		ArrivalTime: &arrival, DepartureTime: &departure,
		PeopleIn: 4, PeopleOut: 1, MoneyCollected: 120.456,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), rec.ID)
	assert.Equal(t, 120.46, rec.MoneyCollected)

	out, err := svc.ListPath(context.Background(), testTripID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "North", out[0].StopName)
	require.NotNil(t, out[0].DepartureTime)
	assert.True(t, departure.Equal(*out[0].DepartureTime))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPathWithoutTimes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO path`).
		WithArgs(testTripID, stopCentral, nil, nil, 0, 0, 0.0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err = OperationsService{DB: db}.RecordPath(context.Background(), models.PathEntry{TripID: testTripID, StopID: stopCentral})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordMajorStop(t *testing.T) {
	_, err := OperationsService{}.RecordMajorStop(context.Background(),
		models.MajorStop{RouteID: testRouteID, StopID: stopNorth, TimeTakenMinutes: -5})
	assert.True(t, domain.IsValidation(err))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO major_stops`).
		WithArgs(testRouteID, stopNorth, 12, 8, 3).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery(`FROM major_stops m .* WHERE m.route_id = \? ORDER BY m.major_stop_id DESC`).
		WithArgs(testRouteID).
		WillReturnRows(sqlmock.NewRows([]string{
			"major_stop_id", "route_id", "stop_id", "route_name", "stop_name",
			"time_taken_minutes", "people_getting_in", "people_getting_down",
		}).AddRow(int64(4), testRouteID, stopNorth, "Central Loop", "North", 12, 8, 3))

	svc := OperationsService{DB: db}
	m, err := svc.RecordMajorStop(context.Background(), models.MajorStop{
		RouteID: testRouteID, StopID: stopNorth, TimeTakenMinutes: 12, PeopleGettingIn: 8, PeopleGettingDown: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), m.ID)

	out, err := svc.ListMajorStops(context.Background(), testRouteID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Central Loop", out[0].RouteName)
	assert.Equal(t, 8, out[0].PeopleGettingIn)
	require.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"testing"
	"time"

	"transitbook/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"n"}).AddRow(n)
}

func TestOverviewCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM routes`).WillReturnRows(countRow(3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM stops`).WillReturnRows(countRow(9))
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM buses GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).
			AddRow("active", 5).AddRow("maintenance", 2).AddRow("inactive", 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM drivers WHERE is_active = TRUE`).WillReturnRows(countRow(6))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips WHERE status = 'scheduled' AND start_time >= \?`).
		WithArgs(time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)).
		WillReturnRows(countRow(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tickets`).WillReturnRows(countRow(17))

	out, err := OverviewService{DB: db, Now: fixedClock}.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.Routes)
	assert.Equal(t, 9, out.Stops)
	assert.Equal(t, 8, out.Buses)
	assert.Equal(t, 5, out.ActiveBuses)
	assert.Equal(t, 2, out.MaintenanceBuses)
	assert.Equal(t, 6, out.ActiveDrivers)
	assert.Equal(t, 4, out.AvailableTrips)
	assert.Equal(t, 17, out.Tickets)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchUsesLikePatterns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM routes WHERE route_name LIKE \? OR source LIKE \? OR destination LIKE \?`).
		WithArgs("%North%", "%North%", "%North%").
		WillReturnRows(sqlmock.NewRows([]string{"route_id", "route_name", "source", "destination", "distance_km"}).
			AddRow(int64(2), "North Express", "Central", "North", 12.5))
	mock.ExpectQuery(`FROM stops WHERE stop_name LIKE \? OR location LIKE \?`).
		WithArgs("%North%", "%North%").
		WillReturnRows(sqlmock.NewRows([]string{"stop_id", "stop_name", "location"}).
			AddRow(stopNorth, "North", "North gate"))
	mock.ExpectQuery(`FROM buses WHERE bus_no LIKE \? OR bus_name LIKE \?`).
		WithArgs("%North%", "%North%").
		WillReturnRows(sqlmock.NewRows([]string{"bus_id", "bus_no", "bus_name", "type", "capacity", "route_id", "ac", "status"}))

	out, err := OverviewService{DB: db}.Search(context.Background(), "  North ")
	require.NoError(t, err)
	require.Len(t, out.Routes, 1)
	assert.Equal(t, "North Express", out.Routes[0].Name)
	require.Len(t, out.Stops, 1)
	assert.NotNil(t, out.Buses)
	assert.Empty(t, out.Buses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRequiresQuery(t *testing.T) {
	_, err := OverviewService{}.Search(context.Background(), " ")
	assert.True(t, domain.IsValidation(err))
}

package services

import (
	"context"
	"testing"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var routeStopColumns = []string{"route_id", "stop_order", "stop_id", "stop_name", "location"}

func TestRouteStopsOrdered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM route_stops rs`).WithArgs(testRouteID).
		WillReturnRows(sqlmock.NewRows(routeStopColumns).
			AddRow(testRouteID, 1, stopCentral, "Central", "").
			AddRow(testRouteID, 2, stopNorth, "North", "").
			AddRow(testRouteID, 3, stopUniversity, "University", "Campus gate"))

	out, err := CatalogService{DB: db}.RouteStops(context.Background(), testRouteID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "University", out[2].StopName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteStopsEmptyRouteIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM route_stops rs`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(routeStopColumns))
	mock.ExpectQuery(`FROM routes WHERE route_id = \?`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"route_id", "route_name", "source", "destination", "distance_km"}).
			AddRow(int64(2), "Airport Express", "Central", "Airport", nil))

	out, err := CatalogService{DB: db}.RouteStops(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteStopsUnknownRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM route_stops rs`).WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows(routeStopColumns))
	mock.ExpectQuery(`FROM routes WHERE route_id = \?`).WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"route_id"}))

	_, err = CatalogService{DB: db}.RouteStops(context.Background(), 77)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRouteStopOrderTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO route_stops`).WithArgs(testRouteID, 2, stopNorth).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err = CatalogService{DB: db}.AddRouteStop(context.Background(), models.RouteStop{RouteID: testRouteID, Order: 2, StopID: stopNorth})
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "order 2 already used")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBusesStatusFilter(t *testing.T) {
	_, err := CatalogService{}.ListBuses(context.Background(), "scrapped")
	assert.True(t, domain.IsValidation(err))
}

func TestCreateBusValidates(t *testing.T) {
	_, err := CatalogService{}.CreateBus(context.Background(), models.Bus{BusNo: "KA-01", Capacity: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = CatalogService{}.CreateBus(context.Background(), models.Bus{Capacity: 40})
	assert.True(t, domain.IsValidation(err))
}

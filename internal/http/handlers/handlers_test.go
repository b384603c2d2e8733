package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "transitbook/internal/config"
	"transitbook/internal/domain"
	"transitbook/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

func init() { gin.SetMode(gin.TestMode) }

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})
	SetClock(func() time.Time { return testNow })
	return mock
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ValidationError{Field: "seat_no", Err: domain.ErrSeatTaken}, http.StatusConflict, "seat_taken"},
		{domain.ValidationError{Field: "contact_no", Msg: "required"}, http.StatusBadRequest, "validation_error"},
		{domain.NotFoundError{Resource: "trip"}, http.StatusNotFound, "not_found"},
		{domain.ResourceExhaustedError{Resource: "seats", Msg: "sold out"}, http.StatusConflict, "resource_exhausted"},
		{domain.ConflictError{Resource: "stop", Msg: "in use"}, http.StatusConflict, "conflict"},
		{domain.UnauthorizedError{Msg: "nope"}, http.StatusUnauthorized, "unauthorized"},
		{domain.Storage("insert ticket", errors.New("connection reset")), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondDomainError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Equal(t, tc.code, decode(t, w)["code"])
	}
}

func TestStorageErrorDoesNotLeakCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondDomainError(c, domain.Storage("insert ticket", errors.New("dial tcp 10.0.0.5:3306")))
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestListAvailableTrips(t *testing.T) {
	mock := withMockDB(t)

	start := testNow.Add(3 * time.Hour)
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery(`FROM trips t .* WHERE t.status = \? AND t.start_time >= \? AND t.route_id = \? ORDER BY t.start_time ASC`).
		WithArgs("scheduled", midnight, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"trip_id", "route_id", "bus_id", "driver_id", "start_time", "end_time", "frequency", "status",
			"route_name", "bus_no", "type", "ac", "driver_name",
		}).AddRow(int64(5), int64(1), int64(9), nil, start, start.Add(time.Hour), "daily", "scheduled",
			"Central Loop", "KA-01-1234", "standard", false, ""))

	r := gin.New()
	r.GET("/api/trips/available", ListAvailableTrips)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/available?route_id=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Central Loop", out[0]["route_name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAvailableTripsRejectsBadRouteID(t *testing.T) {
	r := gin.New()
	r.GET("/api/trips/available", ListAvailableTrips)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/available?route_id=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTripSeatsUnknownTrip(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`FROM trips t LEFT JOIN buses b`).WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"trip_id"}))

	r := gin.New()
	r.GET("/api/trips/:id/seats", GetTripSeats)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/404/seats", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingSeatTaken(t *testing.T) {
	mock := withMockDB(t)
	SetFareStrategy(services.StopCountFare{})

	start := testNow.Add(2 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"trip_id", "route_id", "bus_id", "driver_id", "start_time", "end_time",
			"frequency", "status", "capacity", "type", "ac",
		}).AddRow(int64(5), int64(1), int64(9), nil, start, start.Add(time.Hour), "", "scheduled", int64(40), "", false))
	mock.ExpectQuery(`SELECT stop_order`).WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"stop_order"}).AddRow(1))
	mock.ExpectQuery(`SELECT stop_order`).WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"stop_order"}).AddRow(3))
	mock.ExpectQuery(`SELECT seat_no FROM tickets`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_no"}).AddRow("A1"))
	mock.ExpectRollback()

	body := `{"trip_id":5,"boarding_stop_id":1,"dropping_stop_id":3,"seat_no":"A1","gender":"male",
		"passenger":{"name":"Ravi","contact_no":"9876543210"}}`
	r := gin.New()
	r.POST("/api/bookings", CreateBooking)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "seat_taken", decode(t, w)["code"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingEmptyBody(t *testing.T) {
	r := gin.New()
	r.POST("/api/bookings", CreateBooking)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handlers

import (
	"net/http"
	"time"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/http/middleware"
	"transitbook/internal/services"
	"transitbook/internal/utils"

	"github.com/gin-gonic/gin"
)

func operationsService(c *gin.Context) services.OperationsService {
	return services.OperationsService{RequestID: middleware.GetRequestID(c)}
}

type pathRequest struct {
	TripID         int64   `json:"trip_id"`
	StopID         int64   `json:"stop_id"`
	ArrivalTime    string  `json:"arrival_time"`
	DepartureTime  string  `json:"departure_time"`
	PeopleIn       int     `json:"people_in"`
	PeopleOut      int     `json:"people_out"`
	MoneyCollected float64 `json:"money_collected"`
}

func optionalTime(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(raw)
	if err != nil {
		return nil, domain.ValidationError{Field: field, Msg: "expected YYYY-MM-DD HH:MM[:SS] or RFC3339", Err: err}
	}
	return &t, nil
}

// POST /api/operations/path
func RecordPath(c *gin.Context) {
	var in pathRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	arrival, err := optionalTime("arrival_time", in.ArrivalTime)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	departure, err := optionalTime("departure_time", in.DepartureTime)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p, err := operationsService(c).RecordPath(c.Request.Context(), models.PathEntry{
		TripID:         in.TripID,
		StopID:         in.StopID,
		ArrivalTime:    arrival,
		DepartureTime:  departure,
		PeopleIn:       in.PeopleIn,
		PeopleOut:      in.PeopleOut,
		MoneyCollected: in.MoneyCollected,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/operations/path?trip_id=
func ListPath(c *gin.Context) {
	tripID, ok := optionalInt64Query(c, "trip_id")
	if !ok {
		return
	}
	out, err := operationsService(c).ListPath(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/operations/major-stops
func RecordMajorStop(c *gin.Context) {
	var in models.MajorStop
	if !BindJSONOrError(c, &in) {
		return
	}
	m, err := operationsService(c).RecordMajorStop(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/operations/major-stops?route_id=
func ListMajorStops(c *gin.Context) {
	routeID, ok := optionalInt64Query(c, "route_id")
	if !ok {
		return
	}
	out, err := operationsService(c).ListMajorStops(c.Request.Context(), routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/http/middleware"
	"transitbook/internal/services"
	"transitbook/internal/utils"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{Now: currentClock(), RequestID: middleware.GetRequestID(c)}
}

type tripRequest struct {
	RouteID   *int64 `json:"route_id"`
	BusID     *int64 `json:"bus_id"`
	DriverID  *int64 `json:"driver_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Frequency string `json:"frequency"`
	Status    string `json:"status"`
}

func (r tripRequest) toTrip() (models.Trip, error) {
	t := models.Trip{
		RouteID:   r.RouteID,
		BusID:     r.BusID,
		DriverID:  r.DriverID,
		Frequency: r.Frequency,
		Status:    domain.TripStatus(r.Status),
	}
	var err error
	if t.StartTime, err = utils.ParseDateTime(r.StartTime); err != nil {
		return t, domain.ValidationError{Field: "start_time", Msg: "expected YYYY-MM-DD HH:MM[:SS] or RFC3339", Err: err}
	}
	if t.EndTime, err = utils.ParseDateTime(r.EndTime); err != nil {
		return t, domain.ValidationError{Field: "end_time", Msg: "expected YYYY-MM-DD HH:MM[:SS] or RFC3339", Err: err}
	}
	return t, nil
}

// GET /api/trips/available?route_id=
func ListAvailableTrips(c *gin.Context) {
	routeID, ok := optionalInt64Query(c, "route_id")
	if !ok {
		return
	}
	out, err := tripService(c).ListAvailable(c.Request.Context(), routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/:id/seats
func GetTripSeats(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	m, err := services.SeatAllocator{}.SeatMap(c.Request.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		RespondDomainError(c, domain.NotFoundError{Resource: "trip", Err: err})
		return
	}
	if err != nil {
		RespondDomainError(c, domain.Storage("load seats", err))
		return
	}
	c.JSON(http.StatusOK, m)
}

// GET /api/trips
func ListTrips(c *gin.Context) {
	out, err := tripService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	v, err := tripService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var in tripRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := in.toTrip()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t, err = tripService(c).Create(c.Request.Context(), t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in tripRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := in.toTrip()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = id
	t, err = tripService(c).Update(c.Request.Context(), t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := tripService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}

package handlers

import (
	"net/http"

	"transitbook/internal/http/middleware"
	"transitbook/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Fares:     currentFares(),
		Now:       currentClock(),
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/bookings/quote
func QuoteBooking(c *gin.Context) {
	var in services.QuoteRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	q, err := bookingService(c).Quote(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var in services.BookingRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := bookingService(c).Book(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

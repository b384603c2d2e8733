package handlers

import (
	"net/http"

	"transitbook/internal/http/middleware"
	"transitbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/overview
func Overview(c *gin.Context) {
	out, err := services.OverviewService{Now: currentClock()}.Overview(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/search?q=
func Search(c *gin.Context) {
	out, err := services.OverviewService{}.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/reports/revenue
func RevenueByTrip(c *gin.Context) {
	out, err := services.RevenueService{RequestID: middleware.GetRequestID(c)}.AllTrips(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/reports/revenue/:trip_id
func TripRevenue(c *gin.Context) {
	id, ok := idParam(c, "trip_id")
	if !ok {
		return
	}
	out, err := services.RevenueService{RequestID: middleware.GetRequestID(c)}.TripRevenue(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

package handlers

import (
	"net/http"

	"transitbook/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/buses?status=active
func ListBuses(c *gin.Context) {
	out, err := catalogService(c).ListBuses(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var in models.Bus
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := catalogService(c).CreateBus(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PUT /api/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in models.Bus
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	b, err := catalogService(c).UpdateBus(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteBus(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}

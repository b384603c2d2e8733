package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers?active=true
func ListDrivers(c *gin.Context) {
	var active *bool
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "active", Msg: "must be true or false"})
			return
		}
		active = &v
	}
	out, err := catalogService(c).ListDrivers(c.Request.Context(), active)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	in := models.Driver{IsActive: true}
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := catalogService(c).CreateDriver(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in models.Driver
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	d, err := catalogService(c).UpdateDriver(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type driverActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// PUT /api/drivers/:id/active
func SetDriverActive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in driverActiveRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	if in.IsActive == nil {
		RespondDomainError(c, domain.ValidationError{Field: "is_active", Msg: "required"})
		return
	}
	if err := catalogService(c).SetDriverActive(c.Request.Context(), id, *in.IsActive); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver_id": id, "is_active": *in.IsActive})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteDriver(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}

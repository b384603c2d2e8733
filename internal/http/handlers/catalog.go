package handlers

import (
	"net/http"
	"strconv"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/http/middleware"
	"transitbook/internal/services"

	"github.com/gin-gonic/gin"
)

func catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/routes
func ListRoutes(c *gin.Context) {
	out, err := catalogService(c).ListRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/routes/:id
func GetRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rt, err := catalogService(c).GetRoute(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var in models.Route
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := catalogService(c).CreateRoute(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

// PUT /api/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in models.Route
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	rt, err := catalogService(c).UpdateRoute(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteRoute(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}

// GET /api/routes/:id/stops
func GetRouteStops(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := catalogService(c).RouteStops(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type routeStopRequest struct {
	StopOrder int   `json:"stop_order"`
	StopID    int64 `json:"stop_id"`
}

// POST /api/routes/:id/stops
func AddRouteStop(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in routeStopRequest
	if !BindJSONOrError(c, &in) {
		return
	}
	rs := models.RouteStop{RouteID: id, Order: in.StopOrder, StopID: in.StopID}
	if err := catalogService(c).AddRouteStop(c.Request.Context(), rs); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rs)
}

// DELETE /api/routes/:id/stops/:order
func RemoveRouteStop(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil || order <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "order", Msg: "must be a positive integer"})
		return
	}
	if err := catalogService(c).RemoveRouteStop(c.Request.Context(), id, order); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route stop removed"})
}

// GET /api/stops
func ListStops(c *gin.Context) {
	out, err := catalogService(c).ListStops(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/stops
func CreateStop(c *gin.Context) {
	var in models.Stop
	if !BindJSONOrError(c, &in) {
		return
	}
	st, err := catalogService(c).CreateStop(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// PUT /api/stops/:id
func UpdateStop(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in models.Stop
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	st, err := catalogService(c).UpdateStop(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DELETE /api/stops/:id
func DeleteStop(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteStop(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stop deleted"})
}

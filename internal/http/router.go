package api

import (
	"log"
	stdhttp "net/http"

	intconfig "transitbook/internal/config"
	"transitbook/internal/domain"
	h "transitbook/internal/http/handlers"
	"transitbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.CORS(env.CORSOrigins),
		middleware.Authenticate([]byte(env.JWTSecret)),
		middleware.Logger(),
		gin.Recovery(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperator)
	admin := middleware.RequireRoles(domain.RoleAdmin)
	bookingLimit := middleware.NewRateLimiter(env.BookingRatePerSec, env.BookingBurst).Middleware()

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/endpoints", admin, h.Endpoints)

		// Auth
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", staff, h.Me)

		// Catalog
		routes := api.Group("/routes")
		routes.GET("", h.ListRoutes)
		routes.GET("/:id", h.GetRoute)
		routes.GET("/:id/stops", h.GetRouteStops)
		routes.POST("", admin, h.CreateRoute)
		routes.PUT("/:id", admin, h.UpdateRoute)
		routes.DELETE("/:id", admin, h.DeleteRoute)
		routes.POST("/:id/stops", admin, h.AddRouteStop)
		routes.DELETE("/:id/stops/:order", admin, h.RemoveRouteStop)

		stops := api.Group("/stops")
		stops.GET("", h.ListStops)
		stops.POST("", admin, h.CreateStop)
		stops.PUT("/:id", admin, h.UpdateStop)
		stops.DELETE("/:id", admin, h.DeleteStop)

		buses := api.Group("/buses")
		buses.GET("", h.ListBuses)
		buses.POST("", admin, h.CreateBus)
		buses.PUT("/:id", admin, h.UpdateBus)
		buses.DELETE("/:id", admin, h.DeleteBus)

		drivers := api.Group("/drivers", staff)
		drivers.GET("", h.ListDrivers)
		drivers.POST("", admin, h.CreateDriver)
		drivers.PUT("/:id", admin, h.UpdateDriver)
		drivers.PUT("/:id/active", admin, h.SetDriverActive)
		drivers.DELETE("/:id", admin, h.DeleteDriver)

		// Trips
		trips := api.Group("/trips")
		trips.GET("/available", h.ListAvailableTrips)
		trips.GET("/:id/seats", h.GetTripSeats)
		trips.GET("", staff, h.ListTrips)
		trips.GET("/:id", staff, h.GetTrip)
		trips.POST("", staff, h.CreateTrip)
		trips.PUT("/:id", staff, h.UpdateTrip)
		trips.DELETE("/:id", admin, h.DeleteTrip)

		// Booking
		bookings := api.Group("/bookings")
		bookings.POST("/quote", h.QuoteBooking)
		bookings.POST("", bookingLimit, h.CreateBooking)

		// Tickets
		tickets := api.Group("/tickets")
		tickets.GET("/lookup", h.LookupTickets)
		tickets.POST("/:id/cancel", bookingLimit, h.CancelTicket)
		tickets.GET("/:id/e-ticket", h.GetTicketPDF)
		tickets.GET("", staff, h.ListTickets)
		tickets.PATCH("/:id", admin, h.UpdateTicket)
		tickets.DELETE("/:id", admin, h.DeleteTicket)

		api.GET("/passengers", admin, h.ListPassengers)
		api.GET("/ticket-log", admin, h.ListTicketLog)

		// Dashboard
		api.GET("/overview", h.Overview)
		api.GET("/search", h.Search)

		reports := api.Group("/reports", staff)
		reports.GET("/revenue", h.RevenueByTrip)
		reports.GET("/revenue/:trip_id", h.TripRevenue)

		// Field operations
		ops := api.Group("/operations", staff)
		ops.GET("/path", h.ListPath)
		ops.POST("/path", h.RecordPath)
		ops.GET("/major-stops", h.ListMajorStops)
		ops.POST("/major-stops", h.RecordMajorStop)

		// Users
		users := api.Group("/users", admin)
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
	}

	h.SetRouter(r)
	return r
}

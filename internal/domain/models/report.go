package models

type TripRevenue struct {
	TripID       int64   `json:"trip_id"`
	RouteName    string  `json:"route_name"`
	TicketCount  int     `json:"ticket_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Overview holds the dashboard counters.
type Overview struct {
	Routes           int `json:"routes"`
	Stops            int `json:"stops"`
	Buses            int `json:"buses"`
	ActiveBuses      int `json:"active_buses"`
	MaintenanceBuses int `json:"maintenance_buses"`
	InactiveBuses    int `json:"inactive_buses"`
	ActiveDrivers    int `json:"active_drivers"`
	AvailableTrips   int `json:"available_trips"`
	Tickets          int `json:"tickets"`
}

type SearchResult struct {
	Routes []Route `json:"routes"`
	Stops  []Stop  `json:"stops"`
	Buses  []Bus   `json:"buses"`
}

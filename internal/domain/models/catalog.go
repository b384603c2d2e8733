package models

import "transitbook/internal/domain"

type Route struct {
	ID          int64    `json:"route_id"`
	Name        string   `json:"route_name"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	DistanceKM  *float64 `json:"distance_km,omitempty"`
}

type Stop struct {
	ID       int64  `json:"stop_id"`
	Name     string `json:"stop_name"`
	Location string `json:"location"`
}

// RouteStop is one position in a route's ordered stop sequence.
type RouteStop struct {
	RouteID  int64  `json:"route_id"`
	Order    int    `json:"stop_order"`
	StopID   int64  `json:"stop_id"`
	StopName string `json:"stop_name,omitempty"`
	Location string `json:"location,omitempty"`
}

type Bus struct {
	ID       int64            `json:"bus_id"`
	BusNo    string           `json:"bus_no"`
	Name     string           `json:"bus_name"`
	Type     string           `json:"type"`
	Capacity int              `json:"capacity"`
	RouteID  *int64           `json:"route_id,omitempty"`
	AC       bool             `json:"ac"`
	Status   domain.BusStatus `json:"status"`
}

type Driver struct {
	ID        int64    `json:"driver_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	LicenseNo string   `json:"license_no"`
	Phone     string   `json:"phone"`
	Salary    *float64 `json:"salary,omitempty"`
	Address   string   `json:"address"`
	IsActive  bool     `json:"is_active"`
}

func (d Driver) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

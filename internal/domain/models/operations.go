package models

import "time"

// PathEntry records what happened at one stop during a trip.
type PathEntry struct {
	ID             int64      `json:"path_id"`
	TripID         int64      `json:"trip_id"`
	StopID         int64      `json:"stop_id"`
	StopName       string     `json:"stop_name,omitempty"`
	ArrivalTime    *time.Time `json:"arrival_time,omitempty"`
	DepartureTime  *time.Time `json:"departure_time,omitempty"`
	PeopleIn       int        `json:"people_in"`
	PeopleOut      int        `json:"people_out"`
	MoneyCollected float64    `json:"money_collected"`
}

type MajorStop struct {
	ID                int64  `json:"major_stop_id"`
	RouteID           int64  `json:"route_id"`
	StopID            int64  `json:"stop_id"`
	RouteName         string `json:"route_name,omitempty"`
	StopName          string `json:"stop_name,omitempty"`
	TimeTakenMinutes  int    `json:"time_taken_minutes"`
	PeopleGettingIn   int    `json:"people_getting_in"`
	PeopleGettingDown int    `json:"people_getting_down"`
}

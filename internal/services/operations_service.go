package services

import (
	"context"
	"database/sql"
	"fmt"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

// OperationsService records what happened on the road: per-stop trip
// observations and route major stops.
type OperationsService struct {
	DB        *sql.DB
	RequestID string
}

func (s OperationsService) paths() repositories.PathRepository {
	return repositories.PathRepository{DB: s.DB}
}

func (s OperationsService) RecordPath(ctx context.Context, p models.PathEntry) (models.PathEntry, error) {
	if err := firstErr(positiveID("trip_id", p.TripID), positiveID("stop_id", p.StopID)); err != nil {
		return p, err
	}
	if p.PeopleIn < 0 || p.PeopleOut < 0 {
		return p, domain.ValidationError{Field: "people_in", Msg: "passenger counts must not be negative"}
	}
	if p.MoneyCollected < 0 {
		return p, domain.ValidationError{Field: "money_collected", Msg: "must not be negative"}
	}
	if p.ArrivalTime != nil && p.DepartureTime != nil && p.DepartureTime.Before(*p.ArrivalTime) {
		return p, domain.ValidationError{Field: "departure_time", Msg: "must not be before arrival_time"}
	}
	p.MoneyCollected = utils.FromCents(utils.ToCents(p.MoneyCollected))

	id, err := s.paths().CreatePath(ctx, p)
	if err != nil {
		return p, repoErr("path", "record path", err)
	}
	p.ID = id
	utils.LogEvent(s.RequestID, "operations", "record_path", fmt.Sprintf("path_id=%d trip_id=%d stop_id=%d", id, p.TripID, p.StopID))
	return p, nil
}

func (s OperationsService) ListPath(ctx context.Context, tripID int64) ([]models.PathEntry, error) {
	out, err := s.paths().ListPath(ctx, tripID)
	return out, repoErr("path", "list path", err)
}

func (s OperationsService) RecordMajorStop(ctx context.Context, m models.MajorStop) (models.MajorStop, error) {
	if err := firstErr(positiveID("route_id", m.RouteID), positiveID("stop_id", m.StopID)); err != nil {
		return m, err
	}
	if m.TimeTakenMinutes < 0 || m.PeopleGettingIn < 0 || m.PeopleGettingDown < 0 {
		return m, domain.ValidationError{Msg: "time and passenger counts must not be negative"}
	}
	id, err := s.paths().CreateMajorStop(ctx, m)
	if err != nil {
		return m, repoErr("major stop", "record major stop", err)
	}
	m.ID = id
	utils.LogEvent(s.RequestID, "operations", "record_major_stop", fmt.Sprintf("major_stop_id=%d route_id=%d", id, m.RouteID))
	return m, nil
}

func (s OperationsService) ListMajorStops(ctx context.Context, routeID int64) ([]models.MajorStop, error) {
	out, err := s.paths().ListMajorStops(ctx, routeID)
	return out, repoErr("major stop", "list major stops", err)
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

type TripService struct {
	DB        *sql.DB
	Now       utils.Clock
	RequestID string
}

func (s TripService) trips() repositories.TripRepository {
	return repositories.TripRepository{DB: s.DB}
}

// ListAvailable returns bookable trips: scheduled and starting today or later,
// earliest first. routeID > 0 restricts the result to that route.
func (s TripService) ListAvailable(ctx context.Context, routeID int64) ([]models.TripView, error) {
	out, err := s.trips().ListAvailable(ctx, s.Now.StartOfDay(), routeID)
	return out, repoErr("trip", "list available trips", err)
}

func (s TripService) List(ctx context.Context) ([]models.TripView, error) {
	out, err := s.trips().List(ctx)
	return out, repoErr("trip", "list trips", err)
}

func (s TripService) Get(ctx context.Context, id int64) (models.TripView, error) {
	v, err := s.trips().GetView(ctx, id)
	return v, repoErr("trip", "get trip", err)
}

func validateTrip(t *models.Trip) error {
	t.Frequency = strings.TrimSpace(t.Frequency)
	t.Status = domain.TripStatus(strings.ToLower(strings.TrimSpace(string(t.Status))))
	if t.Status == "" {
		t.Status = domain.TripScheduled
	}
	if !t.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "must be scheduled, ongoing, completed or cancelled"}
	}
	if t.StartTime.IsZero() {
		return domain.ValidationError{Field: "start_time", Msg: "required"}
	}
	if t.EndTime.IsZero() {
		return domain.ValidationError{Field: "end_time", Msg: "required"}
	}
	if !t.EndTime.After(t.StartTime) {
		return domain.ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}
	return nil
}

func (s TripService) Create(ctx context.Context, t models.Trip) (models.Trip, error) {
	if err := validateTrip(&t); err != nil {
		return t, err
	}
	id, err := s.trips().Create(ctx, t)
	if err != nil {
		return t, repoErr("trip", "create trip", err)
	}
	t.ID = id
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("trip_id=%d status=%s", id, t.Status))
	return t, nil
}

func (s TripService) Update(ctx context.Context, t models.Trip) (models.Trip, error) {
	if err := firstErr(positiveID("trip_id", t.ID), validateTrip(&t)); err != nil {
		return t, err
	}
	if err := s.trips().Update(ctx, t); err != nil {
		return t, repoErr("trip", "update trip", err)
	}
	utils.LogEvent(s.RequestID, "trips", "update", fmt.Sprintf("trip_id=%d status=%s", t.ID, t.Status))
	return t, nil
}

// Delete removes the trip. Its tickets stay and lose their trip reference.
func (s TripService) Delete(ctx context.Context, id int64) error {
	if err := s.trips().Delete(ctx, id); err != nil {
		return repoErr("trip", "delete trip", err)
	}
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("trip_id=%d", id))
	return nil
}

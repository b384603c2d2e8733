package services

import (
	"context"
	"database/sql"
	"strings"

	"transitbook/internal/domain"
	"transitbook/internal/domain/models"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

// OverviewService serves the dashboard counters and the catalog search.
type OverviewService struct {
	DB  *sql.DB
	Now utils.Clock
}

func (s OverviewService) Overview(ctx context.Context) (models.Overview, error) {
	var out models.Overview
	var err error

	if out.Routes, err = (repositories.RouteRepository{DB: s.DB}).Count(ctx); err != nil {
		return out, domain.Storage("count routes", err)
	}
	if out.Stops, err = (repositories.StopRepository{DB: s.DB}).Count(ctx); err != nil {
		return out, domain.Storage("count stops", err)
	}
	byStatus, err := repositories.BusRepository{DB: s.DB}.CountByStatus(ctx)
	if err != nil {
		return out, domain.Storage("count buses", err)
	}
	out.ActiveBuses = byStatus[domain.BusActive]
	out.MaintenanceBuses = byStatus[domain.BusMaintenance]
	out.InactiveBuses = byStatus[domain.BusInactive]
	out.Buses = out.ActiveBuses + out.MaintenanceBuses + out.InactiveBuses

	if out.ActiveDrivers, err = (repositories.DriverRepository{DB: s.DB}).CountActive(ctx); err != nil {
		return out, domain.Storage("count drivers", err)
	}
	if out.AvailableTrips, err = (repositories.ReportRepository{DB: s.DB}).CountAvailableTrips(ctx, s.Now.StartOfDay()); err != nil {
		return out, domain.Storage("count trips", err)
	}
	if out.Tickets, err = (repositories.TicketRepository{DB: s.DB}).Count(ctx); err != nil {
		return out, domain.Storage("count tickets", err)
	}
	return out, nil
}

// Search matches routes, stops and buses by substring.
func (s OverviewService) Search(ctx context.Context, q string) (models.SearchResult, error) {
	out := models.SearchResult{Routes: []models.Route{}, Stops: []models.Stop{}, Buses: []models.Bus{}}
	q = strings.TrimSpace(q)
	if q == "" {
		return out, domain.ValidationError{Field: "q", Msg: "required"}
	}

	var err error
	if out.Routes, err = (repositories.RouteRepository{DB: s.DB}).Search(ctx, q); err != nil {
		return out, domain.Storage("search routes", err)
	}
	if out.Stops, err = (repositories.StopRepository{DB: s.DB}).Search(ctx, q); err != nil {
		return out, domain.Storage("search stops", err)
	}
	if out.Buses, err = (repositories.BusRepository{DB: s.DB}).Search(ctx, q); err != nil {
		return out, domain.Storage("search buses", err)
	}
	return out, nil
}

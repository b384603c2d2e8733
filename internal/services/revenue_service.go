package services

import (
	"context"
	"database/sql"
	"fmt"

	"transitbook/internal/domain/models"
	"transitbook/internal/repositories"
	"transitbook/internal/utils"
)

type RevenueService struct {
	DB        *sql.DB
	RequestID string
}

// TripRevenue sums the fares of every ticket on the trip. A trip without
// tickets earns 0; an unknown trip is NotFound.
func (s RevenueService) TripRevenue(ctx context.Context, tripID int64) (models.TripRevenue, error) {
	out := models.TripRevenue{TripID: tripID}

	name, err := repositories.ReportRepository{DB: s.DB}.TripRouteName(ctx, tripID)
	if err != nil {
		return out, repoErr("trip", "load trip route", err)
	}
	fares, err := repositories.TicketRepository{DB: s.DB}.Fares(ctx, tripID)
	if err != nil {
		return out, repoErr("ticket", "load fares", err)
	}

	out.RouteName = name
	out.TicketCount = len(fares)
	out.TotalRevenue = utils.SumMoney(fares)
	utils.LogEvent(s.RequestID, "reports", "trip_revenue", fmt.Sprintf("trip_id=%d total=%s", tripID, utils.FormatMoney(out.TotalRevenue)))
	return out, nil
}

// AllTrips returns revenue per trip for every trip, newest first.
func (s RevenueService) AllTrips(ctx context.Context) ([]models.TripRevenue, error) {
	out, err := repositories.ReportRepository{DB: s.DB}.RevenueByTrip(ctx)
	if err != nil {
		return nil, repoErr("trip", "revenue by trip", err)
	}
	for i := range out {
		out[i].TotalRevenue = utils.FromCents(utils.ToCents(out[i].TotalRevenue))
	}
	return out, nil
}

package repositories

import (
	"context"
	"database/sql"
	"time"

	"transitbook/internal/domain/models"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) q() querier { return conn(r.DB, nil) }

// TripRouteName returns the route name of the trip, "-" when the trip has no route.
func (r ReportRepository) TripRouteName(ctx context.Context, tripID int64) (string, error) {
	var name string
	err := r.q().QueryRowContext(ctx, `
		SELECT COALESCE(r.route_name, '-')
		FROM trips t
		LEFT JOIN routes r ON t.route_id = r.route_id
		WHERE t.trip_id = ?
	`, tripID).Scan(&name)
	return name, err
}

// RevenueByTrip aggregates ticket fares for every trip, trips without tickets included.
func (r ReportRepository) RevenueByTrip(ctx context.Context) ([]models.TripRevenue, error) {
	rows, err := r.q().QueryContext(ctx, `
		SELECT t.trip_id, COALESCE(r.route_name, '-'), COUNT(tk.ticket_id), COALESCE(SUM(tk.fare), 0)
		FROM trips t
		LEFT JOIN routes r ON t.route_id = r.route_id
		LEFT JOIN tickets tk ON t.trip_id = tk.trip_id
		GROUP BY t.trip_id, r.route_name
		ORDER BY t.trip_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripRevenue{}
	for rows.Next() {
		var rev models.TripRevenue
		if err := rows.Scan(&rev.TripID, &rev.RouteName, &rev.TicketCount, &rev.TotalRevenue); err != nil {
			return out, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// CountAvailableTrips counts scheduled trips starting at or after from.
func (r ReportRepository) CountAvailableTrips(ctx context.Context, from time.Time) (int, error) {
	var n int
	err := r.q().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM trips WHERE status = 'scheduled' AND start_time >= ?
	`, from).Scan(&n)
	return n, err
}

package repositories

import (
	"context"
	"database/sql"

	"transitbook/internal/domain/models"
)

// TicketLogRepository reads the append-only ticket_log. Rows are written by
// the after_ticket_insert trigger, never by application code.
type TicketLogRepository struct {
	DB *sql.DB
}

func (r TicketLogRepository) Recent(ctx context.Context, limit int) ([]models.TicketLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := conn(r.DB, nil).QueryContext(ctx, `
		SELECT log_id, ticket_id, trip_id, log_time, action
		FROM ticket_log
		ORDER BY log_time DESC, log_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TicketLogEntry{}
	for rows.Next() {
		var (
			ticketID, tripID sql.NullInt64
			logTime          sql.NullTime
			entry            models.TicketLogEntry
		)
		if err := rows.Scan(&entry.ID, &ticketID, &tripID, &logTime, &entry.Action); err != nil {
			return out, err
		}
		entry.TicketID = int64Ptr(ticketID)
		entry.TripID = int64Ptr(tripID)
		entry.LogTime = logTime.Time
		out = append(out, entry)
	}
	return out, rows.Err()
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Tables are created in dependency order.
var schemaTables = []struct {
	name string
	ddl  string
}{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	user_id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL UNIQUE,
	password_hash VARCHAR(256) NOT NULL,
	role ENUM('admin','operator') NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"drivers", `
CREATE TABLE IF NOT EXISTS drivers (
	driver_id INT AUTO_INCREMENT PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL DEFAULT '',
	license_no VARCHAR(100) UNIQUE,
	phone VARCHAR(20),
	salary DECIMAL(10,2),
	address TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"routes", `
CREATE TABLE IF NOT EXISTS routes (
	route_id INT AUTO_INCREMENT PRIMARY KEY,
	route_name VARCHAR(200) NOT NULL,
	source VARCHAR(200) NOT NULL,
	destination VARCHAR(200) NOT NULL,
	distance_km FLOAT
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"stops", `
CREATE TABLE IF NOT EXISTS stops (
	stop_id INT AUTO_INCREMENT PRIMARY KEY,
	stop_name VARCHAR(200) NOT NULL,
	location VARCHAR(255)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"buses", `
CREATE TABLE IF NOT EXISTS buses (
	bus_id INT AUTO_INCREMENT PRIMARY KEY,
	bus_no VARCHAR(100) NOT NULL UNIQUE,
	bus_name VARCHAR(200),
	type VARCHAR(100),
	capacity INT NOT NULL,
	route_id INT,
	ac BOOLEAN NOT NULL DEFAULT FALSE,
	status ENUM('active','maintenance','inactive') NOT NULL DEFAULT 'active',
	CHECK (capacity > 0),
	FOREIGN KEY (route_id) REFERENCES routes(route_id) ON DELETE SET NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"route_stops", `
CREATE TABLE IF NOT EXISTS route_stops (
	route_id INT NOT NULL,
	stop_order INT NOT NULL,
	stop_id INT NOT NULL,
	PRIMARY KEY (route_id, stop_order),
	FOREIGN KEY (route_id) REFERENCES routes(route_id) ON DELETE CASCADE,
	FOREIGN KEY (stop_id) REFERENCES stops(stop_id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"trips", `
CREATE TABLE IF NOT EXISTS trips (
	trip_id INT AUTO_INCREMENT PRIMARY KEY,
	route_id INT,
	bus_id INT,
	driver_id INT,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	frequency VARCHAR(100),
	status ENUM('scheduled','ongoing','completed','cancelled') NOT NULL DEFAULT 'scheduled',
	CHECK (end_time > start_time),
	KEY idx_trips_status_start (status, start_time),
	FOREIGN KEY (route_id) REFERENCES routes(route_id) ON DELETE SET NULL,
	FOREIGN KEY (bus_id) REFERENCES buses(bus_id) ON DELETE SET NULL,
	FOREIGN KEY (driver_id) REFERENCES drivers(driver_id) ON DELETE SET NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"passengers", `
CREATE TABLE IF NOT EXISTS passengers (
	passenger_id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	address VARCHAR(300),
	contact_no VARCHAR(20) NOT NULL,
	email_id VARCHAR(200),
	KEY idx_passengers_contact (contact_no)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"tickets", `
CREATE TABLE IF NOT EXISTS tickets (
	ticket_id INT AUTO_INCREMENT PRIMARY KEY,
	trip_id INT,
	passenger_id INT,
	boarding_stop_id INT,
	dropping_stop_id INT,
	seat_no VARCHAR(10) NOT NULL,
	fare DECIMAL(10,2) NOT NULL DEFAULT 0,
	gender ENUM('male','female','other') NOT NULL DEFAULT 'other',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_trip_seat (trip_id, seat_no),
	FOREIGN KEY (trip_id) REFERENCES trips(trip_id) ON DELETE SET NULL,
	FOREIGN KEY (passenger_id) REFERENCES passengers(passenger_id) ON DELETE SET NULL,
	FOREIGN KEY (boarding_stop_id) REFERENCES stops(stop_id) ON DELETE SET NULL,
	FOREIGN KEY (dropping_stop_id) REFERENCES stops(stop_id) ON DELETE SET NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"path", `
CREATE TABLE IF NOT EXISTS path (
	path_id INT AUTO_INCREMENT PRIMARY KEY,
	trip_id INT NOT NULL,
	stop_id INT NOT NULL,
	arrival_time DATETIME,
	departure_time DATETIME,
	people_in INT NOT NULL DEFAULT 0,
	people_out INT NOT NULL DEFAULT 0,
	money_collected DECIMAL(10,2) NOT NULL DEFAULT 0,
	FOREIGN KEY (trip_id) REFERENCES trips(trip_id) ON DELETE CASCADE,
	FOREIGN KEY (stop_id) REFERENCES stops(stop_id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"major_stops", `
CREATE TABLE IF NOT EXISTS major_stops (
	major_stop_id INT AUTO_INCREMENT PRIMARY KEY,
	route_id INT NOT NULL,
	stop_id INT NOT NULL,
	time_taken_minutes INT NOT NULL DEFAULT 0,
	people_getting_in INT NOT NULL DEFAULT 0,
	people_getting_down INT NOT NULL DEFAULT 0,
	FOREIGN KEY (route_id) REFERENCES routes(route_id) ON DELETE CASCADE,
	FOREIGN KEY (stop_id) REFERENCES stops(stop_id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"ticket_log", `
CREATE TABLE IF NOT EXISTS ticket_log (
	log_id INT AUTO_INCREMENT PRIMARY KEY,
	ticket_id INT,
	trip_id INT,
	log_time DATETIME DEFAULT CURRENT_TIMESTAMP,
	action VARCHAR(50) NOT NULL,
	FOREIGN KEY (ticket_id) REFERENCES tickets(ticket_id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// TicketIssuedAction is the ticket_log action written by the insert trigger.
const TicketIssuedAction = "Ticket Issued"

var schemaRoutines = []string{
	`DROP TRIGGER IF EXISTS after_ticket_insert`,
	`CREATE TRIGGER after_ticket_insert
AFTER INSERT ON tickets
FOR EACH ROW
INSERT INTO ticket_log (ticket_id, trip_id, action)
VALUES (NEW.ticket_id, NEW.trip_id, '` + TicketIssuedAction + `')`,
	`DROP PROCEDURE IF EXISTS GetTripRevenue`,
	`CREATE PROCEDURE GetTripRevenue(IN tripID INT)
BEGIN
	SELECT t.trip_id, COALESCE(r.route_name,'-') AS route_name,
	       COALESCE(SUM(tk.fare), 0) AS total_revenue
	FROM trips t
	LEFT JOIN routes r ON t.route_id = r.route_id
	LEFT JOIN tickets tk ON t.trip_id = tk.trip_id
	WHERE t.trip_id = tripID
	GROUP BY t.trip_id, r.route_name;
END`,
}

// EnsureSchema creates every table, the ticket_log trigger and the revenue
// procedure. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	for _, t := range schemaTables {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	for _, stmt := range schemaRoutines {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema routine: %w", err)
		}
	}
	log.Printf("[DB] schema ready (%d tables)", len(schemaTables))
	return nil
}

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

// CatalogService reads and maintains routes, stops, route stop sequences,
// buses and drivers.
type CatalogService struct {
	DB        *sql.DB
	RequestID string
}

func (s CatalogService) routes() repositories.RouteRepository {
	return repositories.RouteRepository{DB: s.DB}
}

func (s CatalogService) stops() repositories.StopRepository {
	return repositories.StopRepository{DB: s.DB}
}

func (s CatalogService) buses() repositories.BusRepository {
	return repositories.BusRepository{DB: s.DB}
}

func (s CatalogService) drivers() repositories.DriverRepository {
	return repositories.DriverRepository{DB: s.DB}
}

func (s CatalogService) log(action, msg string) {
	utils.LogEvent(s.RequestID, "catalog", action, msg)
}

// Routes

func (s CatalogService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	out, err := s.routes().List(ctx)
	return out, repoErr("route", "list routes", err)
}

func (s CatalogService) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	rt, err := s.routes().GetByID(ctx, id)
	return rt, repoErr("route", "get route", err)
}

func validateRoute(rt *models.Route) error {
	rt.Name = utils.NormalizeSpace(rt.Name)
	rt.Source = utils.NormalizeSpace(rt.Source)
	rt.Destination = utils.NormalizeSpace(rt.Destination)
	if err := firstErr(
		required("route_name", rt.Name),
		required("source", rt.Source),
		required("destination", rt.Destination),
	); err != nil {
		return err
	}
	if rt.DistanceKM != nil && *rt.DistanceKM < 0 {
		return domain.ValidationError{Field: "distance_km", Msg: "must not be negative"}
	}
	return nil
}

func (s CatalogService) CreateRoute(ctx context.Context, rt models.Route) (models.Route, error) {
	if err := validateRoute(&rt); err != nil {
		return rt, err
	}
	id, err := s.routes().Create(ctx, rt)
	if err != nil {
		return rt, repoErr("route", "create route", err)
	}
	rt.ID = id
	s.log("create_route", fmt.Sprintf("route_id=%d", id))
	return rt, nil
}

func (s CatalogService) UpdateRoute(ctx context.Context, rt models.Route) (models.Route, error) {
	if err := firstErr(positiveID("route_id", rt.ID), validateRoute(&rt)); err != nil {
		return rt, err
	}
	if err := s.routes().Update(ctx, rt); err != nil {
		return rt, repoErr("route", "update route", err)
	}
	s.log("update_route", fmt.Sprintf("route_id=%d", rt.ID))
	return rt, nil
}

func (s CatalogService) DeleteRoute(ctx context.Context, id int64) error {
	if err := s.routes().Delete(ctx, id); err != nil {
		return repoErr("route", "delete route", err)
	}
	s.log("delete_route", fmt.Sprintf("route_id=%d", id))
	return nil
}

// RouteStops returns the ordered stop sequence. A route without stops yields
// an empty slice; an unknown route is NotFound.
func (s CatalogService) RouteStops(ctx context.Context, routeID int64) ([]models.RouteStop, error) {
	stops, err := s.routes().Stops(ctx, routeID)
	if err != nil {
		return nil, repoErr("route", "list route stops", err)
	}
	if len(stops) == 0 {
		if _, err := s.routes().GetByID(ctx, routeID); err != nil {
			return nil, repoErr("route", "get route", err)
		}
	}
	return stops, nil
}

// AddRouteStop places a stop at an order position. Positions are unique per route.
func (s CatalogService) AddRouteStop(ctx context.Context, rs models.RouteStop) error {
	if err := firstErr(positiveID("route_id", rs.RouteID), positiveID("stop_id", rs.StopID)); err != nil {
		return err
	}
	if rs.Order <= 0 {
		return domain.ValidationError{Field: "stop_order", Msg: "must be positive"}
	}
	if err := s.routes().AddStop(ctx, rs); err != nil {
		e := repoErr("route stop", "add route stop", err)
		if domain.IsConflict(e) {
			return domain.ConflictError{Resource: "route stop", Msg: fmt.Sprintf("order %d already used on route %d", rs.Order, rs.RouteID), Err: err}
		}
		return e
	}
	s.log("add_route_stop", fmt.Sprintf("route_id=%d order=%d stop_id=%d", rs.RouteID, rs.Order, rs.StopID))
	return nil
}

func (s CatalogService) RemoveRouteStop(ctx context.Context, routeID int64, order int) error {
	if err := s.routes().RemoveStop(ctx, routeID, order); err != nil {
		return repoErr("route stop", "remove route stop", err)
	}
	s.log("remove_route_stop", fmt.Sprintf("route_id=%d order=%d", routeID, order))
	return nil
}

// Stops

func (s CatalogService) ListStops(ctx context.Context) ([]models.Stop, error) {
	out, err := s.stops().List(ctx)
	return out, repoErr("stop", "list stops", err)
}

func (s CatalogService) CreateStop(ctx context.Context, st models.Stop) (models.Stop, error) {
	st.Name = utils.NormalizeSpace(st.Name)
	st.Location = strings.TrimSpace(st.Location)
	if err := required("stop_name", st.Name); err != nil {
		return st, err
	}
	id, err := s.stops().Create(ctx, st)
	if err != nil {
		return st, repoErr("stop", "create stop", err)
	}
	st.ID = id
	s.log("create_stop", fmt.Sprintf("stop_id=%d", id))
	return st, nil
}

func (s CatalogService) UpdateStop(ctx context.Context, st models.Stop) (models.Stop, error) {
	st.Name = utils.NormalizeSpace(st.Name)
	st.Location = strings.TrimSpace(st.Location)
	if err := firstErr(positiveID("stop_id", st.ID), required("stop_name", st.Name)); err != nil {
		return st, err
	}
	if err := s.stops().Update(ctx, st); err != nil {
		return st, repoErr("stop", "update stop", err)
	}
	return st, nil
}

func (s CatalogService) DeleteStop(ctx context.Context, id int64) error {
	if err := s.stops().Delete(ctx, id); err != nil {
		return repoErr("stop", "delete stop", err)
	}
	s.log("delete_stop", fmt.Sprintf("stop_id=%d", id))
	return nil
}

// Buses

// ListBuses returns every bus, or only those in status when it is set.
func (s CatalogService) ListBuses(ctx context.Context, status string) ([]models.Bus, error) {
	st := domain.BusStatus(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, domain.ValidationError{Field: "status", Msg: "must be active, maintenance or inactive"}
	}
	out, err := s.buses().List(ctx, st)
	return out, repoErr("bus", "list buses", err)
}

func validateBus(b *models.Bus) error {
	b.BusNo = strings.ToUpper(strings.TrimSpace(b.BusNo))
	b.Name = utils.NormalizeSpace(b.Name)
	b.Type = strings.TrimSpace(b.Type)
	if b.Status == "" {
		b.Status = domain.BusActive
	}
	if err := required("bus_no", b.BusNo); err != nil {
		return err
	}
	if b.Capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	if !b.Status.Valid() {
		return domain.ValidationError{Field: "status", Msg: "must be active, maintenance or inactive"}
	}
	return nil
}

func (s CatalogService) CreateBus(ctx context.Context, b models.Bus) (models.Bus, error) {
	if err := validateBus(&b); err != nil {
		return b, err
	}
	id, err := s.buses().Create(ctx, b)
	if err != nil {
		return b, repoErr("bus", "create bus", err)
	}
	b.ID = id
	s.log("create_bus", fmt.Sprintf("bus_id=%d bus_no=%s", id, b.BusNo))
	return b, nil
}

func (s CatalogService) UpdateBus(ctx context.Context, b models.Bus) (models.Bus, error) {
	if err := firstErr(positiveID("bus_id", b.ID), validateBus(&b)); err != nil {
		return b, err
	}
	if err := s.buses().Update(ctx, b); err != nil {
		return b, repoErr("bus", "update bus", err)
	}
	s.log("update_bus", fmt.Sprintf("bus_id=%d", b.ID))
	return b, nil
}

func (s CatalogService) DeleteBus(ctx context.Context, id int64) error {
	if err := s.buses().Delete(ctx, id); err != nil {
		return repoErr("bus", "delete bus", err)
	}
	s.log("delete_bus", fmt.Sprintf("bus_id=%d", id))
	return nil
}

// Drivers

func (s CatalogService) ListDrivers(ctx context.Context, active *bool) ([]models.Driver, error) {
	out, err := s.drivers().List(ctx, active)
	return out, repoErr("driver", "list drivers", err)
}

func validateDriver(d *models.Driver) error {
	d.FirstName = utils.NormalizeSpace(d.FirstName)
	d.LastName = utils.NormalizeSpace(d.LastName)
	d.LicenseNo = strings.TrimSpace(d.LicenseNo)
	d.Phone = strings.TrimSpace(d.Phone)
	if err := required("first_name", d.FirstName); err != nil {
		return err
	}
	if d.Salary != nil && *d.Salary < 0 {
		return domain.ValidationError{Field: "salary", Msg: "must not be negative"}
	}
	return nil
}

func (s CatalogService) CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	if err := validateDriver(&d); err != nil {
		return d, err
	}
	id, err := s.drivers().Create(ctx, d)
	if err != nil {
		return d, repoErr("driver", "create driver", err)
	}
	d.ID = id
	s.log("create_driver", fmt.Sprintf("driver_id=%d name=%q", id, d.FullName()))
	return d, nil
}

func (s CatalogService) UpdateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	if err := firstErr(positiveID("driver_id", d.ID), validateDriver(&d)); err != nil {
		return d, err
	}
	if err := s.drivers().Update(ctx, d); err != nil {
		return d, repoErr("driver", "update driver", err)
	}
	s.log("update_driver", fmt.Sprintf("driver_id=%d name=%q", d.ID, d.FullName()))
	return d, nil
}

func (s CatalogService) SetDriverActive(ctx context.Context, id int64, active bool) error {
	if err := s.drivers().SetActive(ctx, id, active); err != nil {
		return repoErr("driver", "set driver active", err)
	}
	s.log("set_driver_active", fmt.Sprintf("driver_id=%d active=%t", id, active))
	return nil
}

func (s CatalogService) DeleteDriver(ctx context.Context, id int64) error {
	if err := s.drivers().Delete(ctx, id); err != nil {
		return repoErr("driver", "delete driver", err)
	}
	s.log("delete_driver", fmt.Sprintf("driver_id=%d", id))
	return nil
}

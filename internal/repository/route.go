package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type RouteRepository interface {
	CreateRoute(ctx context.Context, route *models.Route) error
	GetAllRoutes(ctx context.Context) ([]*models.Route, error)
	DeleteRoute(ctx context.Context, id int64) error
}

type routeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRouteRepository(db *sqlx.DB, logger *zap.Logger) RouteRepository {
	return &routeRepository{db: db, logger: logger}
}

const routeColumns = `id, origin, destination, distance_km, estimated_time, vehicle_id, order_id, created_at`

func (r *routeRepository) CreateRoute(ctx context.Context, route *models.Route) error {
	query := `INSERT INTO routes (origin, destination, distance_km, estimated_time, vehicle_id, order_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + routeColumns
	return r.db.QueryRowxContext(ctx, query,
		route.Origin, route.Destination, route.DistanceKm, route.EstimatedTime, route.VehicleID, route.OrderID,
	).StructScan(route)
}

func (r *routeRepository) GetAllRoutes(ctx context.Context) ([]*models.Route, error) {
	var routes []*models.Route
	query := `SELECT ` + routeColumns + ` FROM routes ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &routes, query); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepository) DeleteRoute(ctx context.Context, id int64) error {
	return execDelete(ctx, r.db, "routes", id)
}

package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetAllOrders(ctx context.Context) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	ClientExists(ctx context.Context, id int64) (bool, error)
	VehicleExists(ctx context.Context, id int64) (bool, error)
}

type orderRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOrderRepository(db *sqlx.DB, logger *zap.Logger) OrderRepository {
	return &orderRepository{db: db, logger: logger}
}

const orderColumns = `id, tracking_code, client_id, origin, destination, weight, status,
	assigned_vehicle_id, assigned_driver_id, warehouse_id, estimated_delivery, created_at, updated_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `INSERT INTO orders (tracking_code, client_id, origin, destination, weight, status, assigned_vehicle_id, estimated_delivery)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING ` + orderColumns
	return r.db.QueryRowxContext(ctx, query,
		order.TrackingCode, order.ClientID, order.Origin, order.Destination,
		order.Weight, order.Status, order.AssignedVehicleID, order.EstimatedDelivery,
	).StructScan(order)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAllOrders lists orders newest first, joined with the display names the
// dashboard table shows alongside each shipment.
func (r *orderRepository) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	query := `
		SELECT
			o.id, o.tracking_code, o.client_id, o.origin, o.destination, o.weight, o.status,
			o.assigned_vehicle_id, o.assigned_driver_id, o.warehouse_id, o.estimated_delivery,
			o.created_at, o.updated_at,
			c.name AS client_name,
			v.plate AS vehicle_plate,
			d.name AS driver_name
		FROM orders o
		LEFT JOIN clients c ON o.client_id = c.id
		LEFT JOIN vehicles v ON o.assigned_vehicle_id = v.id
		LEFT JOIN drivers d ON o.assigned_driver_id = d.id
		ORDER BY o.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) (*models.Order, error) {
	query, args := buildUpdate("orders", fields, id, orderColumns)
	// Every edit bumps updated_at.
	query = strings.Replace(query, " WHERE ", ", updated_at = now() WHERE ", 1)

	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, args...); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	return execDelete(ctx, r.db, "orders", id)
}

func (r *orderRepository) ClientExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id)
	return exists, err
}

func (r *orderRepository) VehicleExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM vehicles WHERE id = $1)`, id)
	return exists, err
}

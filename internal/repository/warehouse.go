package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type WarehouseRepository interface {
	CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error
	GetWarehouseByID(ctx context.Context, id int64) (*models.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]*models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int64, fields map[string]interface{}) (*models.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int64) error
}

type warehouseRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewWarehouseRepository(db *sqlx.DB, logger *zap.Logger) WarehouseRepository {
	return &warehouseRepository{db: db, logger: logger}
}

const warehouseColumns = `id, name, location, capacity, manager, status, created_at`

func (r *warehouseRepository) CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error {
	query := `INSERT INTO warehouses (name, location, capacity, manager, status) VALUES ($1, $2, $3, $4, $5)
	          RETURNING ` + warehouseColumns
	return r.db.QueryRowxContext(ctx, query, warehouse.Name, warehouse.Location, warehouse.Capacity, warehouse.Manager, warehouse.Status).StructScan(warehouse)
}

func (r *warehouseRepository) GetWarehouseByID(ctx context.Context, id int64) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	if err := r.db.GetContext(ctx, &warehouse, query, id); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) GetAllWarehouses(ctx context.Context) ([]*models.Warehouse, error) {
	var warehouses []*models.Warehouse
	query := `SELECT ` + warehouseColumns + ` FROM warehouses ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &warehouses, query); err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (r *warehouseRepository) UpdateWarehouse(ctx context.Context, id int64, fields map[string]interface{}) (*models.Warehouse, error) {
	query, args := buildUpdate("warehouses", fields, id, warehouseColumns)
	var warehouse models.Warehouse
	if err := r.db.GetContext(ctx, &warehouse, query, args...); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) DeleteWarehouse(ctx context.Context, id int64) error {
	return execDelete(ctx, r.db, "warehouses", id)
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error)
	GetAllVehicles(ctx context.Context) ([]*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int64, fields map[string]interface{}) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
}

type vehicleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVehicleRepository(db *sqlx.DB, logger *zap.Logger) VehicleRepository {
	return &vehicleRepository{db: db, logger: logger}
}

const vehicleColumns = `id, plate, model, capacity, status, created_at`

func (r *vehicleRepository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	query := `INSERT INTO vehicles (plate, model, capacity, status) VALUES ($1, $2, $3, $4)
	          RETURNING ` + vehicleColumns
	return r.db.QueryRowxContext(ctx, query, vehicle.Plate, vehicle.Model, vehicle.Capacity, vehicle.Status).StructScan(vehicle)
}

func (r *vehicleRepository) GetVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	if err := r.db.GetContext(ctx, &vehicle, query, id); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetAllVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &vehicles, query); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) UpdateVehicle(ctx context.Context, id int64, fields map[string]interface{}) (*models.Vehicle, error) {
	query, args := buildUpdate("vehicles", fields, id, vehicleColumns)
	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, args...); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) DeleteVehicle(ctx context.Context, id int64) error {
	return execDelete(ctx, r.db, "vehicles", id)
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type DriverRepository interface {
	CreateDriver(ctx context.Context, driver *models.Driver) error
	GetDriverByID(ctx context.Context, id int64) (*models.Driver, error)
	GetAllDrivers(ctx context.Context) ([]*models.Driver, error)
	UpdateDriver(ctx context.Context, id int64, fields map[string]interface{}) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id int64) error
}

type driverRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewDriverRepository(db *sqlx.DB, logger *zap.Logger) DriverRepository {
	return &driverRepository{db: db, logger: logger}
}

const driverColumns = `id, name, license_number, phone, status, created_at`

func (r *driverRepository) CreateDriver(ctx context.Context, driver *models.Driver) error {
	query := `INSERT INTO drivers (name, license_number, phone, status) VALUES ($1, $2, $3, $4)
	          RETURNING ` + driverColumns
	return r.db.QueryRowxContext(ctx, query, driver.Name, driver.LicenseNumber, driver.Phone, driver.Status).StructScan(driver)
}

func (r *driverRepository) GetDriverByID(ctx context.Context, id int64) (*models.Driver, error) {
	var driver models.Driver
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	if err := r.db.GetContext(ctx, &driver, query, id); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) GetAllDrivers(ctx context.Context) ([]*models.Driver, error) {
	var drivers []*models.Driver
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY id`
	if err := r.db.SelectContext(ctx, &drivers, query); err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *driverRepository) UpdateDriver(ctx context.Context, id int64, fields map[string]interface{}) (*models.Driver, error) {
	query, args := buildUpdate("drivers", fields, id, driverColumns)
	var driver models.Driver
	if err := r.db.GetContext(ctx, &driver, query, args...); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) DeleteDriver(ctx context.Context, id int64) error {
	return execDelete(ctx, r.db, "drivers", id)
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) error
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	GetAllClients(ctx context.Context) ([]*models.Client, error)
	UpdateClient(ctx context.Context, id int64, fields map[string]interface{}) (*models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

type clientRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewClientRepository(db *sqlx.DB, logger *zap.Logger) ClientRepository {
	return &clientRepository{db: db, logger: logger}
}

const clientColumns = `id, name, contact_email, contact_phone, address, created_at`

func (r *clientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	query := `INSERT INTO clients (name, contact_email, contact_phone, address) VALUES ($1, $2, $3, $4)
	          RETURNING ` + clientColumns
	return r.db.QueryRowxContext(ctx, query, client.Name, client.ContactEmail, client.ContactPhone, client.Address).StructScan(client)
}

func (r *clientRepository) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetAllClients(ctx context.Context) ([]*models.Client, error) {
	var clients []*models.Client
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id`
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) UpdateClient(ctx context.Context, id int64, fields map[string]interface{}) (*models.Client, error) {
	query, args := buildUpdate("clients", fields, id, clientColumns)
	var client models.Client
	if err := r.db.GetContext(ctx, &client, query, args...); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) DeleteClient(ctx context.Context, id int64) error {
	return execDelete(ctx, r.db, "clients", id)
}

package models

import "time"

type Driver struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	LicenseNumber string    `db:"license_number" json:"license_number"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateDriverInput struct {
	Name          string  `json:"name" binding:"required"`
	LicenseNumber string  `json:"license_number" binding:"required"`
	Phone         *string `json:"phone"`
	Status        *string `json:"status"`
}

type UpdateDriverInput struct {
	Name          *string `json:"name"`
	LicenseNumber *string `json:"license_number"`
	Phone         *string `json:"phone"`
	Status        *string `json:"status"`
}

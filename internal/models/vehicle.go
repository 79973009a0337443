package models

import "time"

// Vehicle statuses used by the dashboard.
const (
	VehicleStatusAvailable   = "available"
	VehicleStatusInTransit   = "in_transit"
	VehicleStatusMaintenance = "maintenance"
)

type Vehicle struct {
	ID        int64     `db:"id" json:"id"`
	Plate     string    `db:"plate" json:"plate"`
	Model     *string   `db:"model" json:"model,omitempty"`
	Capacity  float64   `db:"capacity" json:"capacity"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateVehicleInput struct {
	Plate    string   `json:"plate" binding:"required"`
	Model    *string  `json:"model"`
	Capacity *float64 `json:"capacity"`
	Status   *string  `json:"status"`
}

type UpdateVehicleInput struct {
	Plate    *string  `json:"plate"`
	Model    *string  `json:"model"`
	Capacity *float64 `json:"capacity"`
	Status   *string  `json:"status"`
}

package models

import "time"

// Order statuses as the frontend filters them.
const (
	OrderStatusPending   = "pending"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID                int64      `db:"id" json:"id"`
	TrackingCode      string     `db:"tracking_code" json:"tracking_code"`
	ClientID          *int64     `db:"client_id" json:"client_id,omitempty"`
	Origin            string     `db:"origin" json:"origin"`
	Destination       string     `db:"destination" json:"destination"`
	Weight            float64    `db:"weight" json:"weight"`
	Status            string     `db:"status" json:"status"`
	AssignedVehicleID *int64     `db:"assigned_vehicle_id" json:"assigned_vehicle_id,omitempty"`
	AssignedDriverID  *int64     `db:"assigned_driver_id" json:"assigned_driver_id,omitempty"`
	WarehouseID       *int64     `db:"warehouse_id" json:"warehouse_id,omitempty"`
	EstimatedDelivery *time.Time `db:"estimated_delivery" json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`

	// Joined display fields (list queries only).
	ClientName   *string `db:"client_name" json:"client_name,omitempty"`
	VehiclePlate *string `db:"vehicle_plate" json:"vehicle_plate,omitempty"`
	DriverName   *string `db:"driver_name" json:"driver_name,omitempty"`
}

type CreateOrderInput struct {
	TrackingCode      string     `json:"tracking_code"`
	ClientID          *int64     `json:"client_id"`
	Origin            string     `json:"origin" binding:"required"`
	Destination       string     `json:"destination" binding:"required"`
	Weight            *float64   `json:"weight"`
	AssignedVehicleID *int64     `json:"assigned_vehicle_id"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type UpdateOrderInput struct {
	TrackingCode      *string    `json:"tracking_code"`
	ClientID          *int64     `json:"client_id"`
	Origin            *string    `json:"origin"`
	Destination       *string    `json:"destination"`
	Weight            *float64   `json:"weight"`
	Status            *string    `json:"status"`
	AssignedVehicleID *int64     `json:"assigned_vehicle_id"`
	AssignedDriverID  *int64     `json:"assigned_driver_id"`
	WarehouseID       *int64     `json:"warehouse_id"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

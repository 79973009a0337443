package models

import "time"

// Route is a planned leg between two points, optionally tied to a
// vehicle and an order.
type Route struct {
	ID            int64     `db:"id" json:"id"`
	Origin        string    `db:"origin" json:"origin"`
	Destination   string    `db:"destination" json:"destination"`
	DistanceKm    *float64  `db:"distance_km" json:"distance_km,omitempty"`
	EstimatedTime *string   `db:"estimated_time" json:"estimated_time,omitempty"`
	VehicleID     *int64    `db:"vehicle_id" json:"vehicle_id,omitempty"`
	OrderID       *int64    `db:"order_id" json:"order_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreateRouteInput struct {
	Origin        string   `json:"origin" binding:"required"`
	Destination   string   `json:"destination" binding:"required"`
	DistanceKm    *float64 `json:"distance_km"`
	EstimatedTime *string  `json:"estimated_time"`
	VehicleID     *int64   `json:"vehicle_id"`
	OrderID       *int64   `json:"order_id"`
}

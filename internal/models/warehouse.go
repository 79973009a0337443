package models

import "time"

type Warehouse struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  *string   `db:"location" json:"location,omitempty"`
	Capacity  float64   `db:"capacity" json:"capacity"`
	Manager   *string   `db:"manager" json:"manager,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateWarehouseInput struct {
	Name     string   `json:"name" binding:"required"`
	Location *string  `json:"location"`
	Capacity *float64 `json:"capacity"`
	Manager  *string  `json:"manager"`
	Status   *string  `json:"status"`
}

type UpdateWarehouseInput struct {
	Name     *string  `json:"name"`
	Location *string  `json:"location"`
	Capacity *float64 `json:"capacity"`
	Manager  *string  `json:"manager"`
	Status   *string  `json:"status"`
}

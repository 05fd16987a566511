package models

import "time"

type FuelStation struct {
	ID         string
	FuelType   string
	Quantity   int
	Price      *int
	Status     string // "available", "unavailable"
	OperatorID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// Valid reports whether the status is part of the two-value enum. Both
// transitions between pending and completed are allowed.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusCompleted
}

// OrderLine references a catalog product by id. Lines are stored as a
// snapshot of references, not embedded product data.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order is the aggregate for customer orders. Total is derived from current
// catalog prices on every write and never taken from the client.
type Order struct {
	ID        string
	UserID    string
	Products  []OrderLine
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is the authoritative unit price used to
// compute order totals at write time; orders never embed it.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

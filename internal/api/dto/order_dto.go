package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/erp-service/internal/domain"
)

// OrderLineRequest is one requested line item.
type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest payload for order create and update. A client-supplied total
// is ignored; the server derives it from the catalog. The acting user comes
// from the bearer token, so a body-supplied userId is ignored as well.
type OrderRequest struct {
	Products []OrderLineRequest `json:"products"`
	Status   string             `json:"status"`
}

// OrderUserRef is the resolved order owner, null when the user was deleted.
type OrderUserRef struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// OrderProductRef is the resolved catalog referent, null when the product was
// deleted.
type OrderProductRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderLineResponse pairs the stored reference with its resolved product.
type OrderLineResponse struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *OrderProductRef `json:"product"`
}

// OrderResponse mirrors the read path for both queries and write responses.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	User      *OrderUserRef       `json:"user"`
	Products  []OrderLineResponse `json:"products"`
	Total     decimal.Decimal     `json:"total"`
	Status    domain.OrderStatus  `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/erp-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated EventType = "order_created"
	EventOrderUpdated EventType = "order_updated"
	EventOrderDeleted EventType = "order_deleted"
	EventUserCreated  EventType = "user_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderWrittenPayload accompanies order create and update events.
type OrderWrittenPayload struct {
	UserID    string             `json:"user_id"`
	Total     decimal.Decimal    `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	LineCount int                `json:"line_count"`
}

// UserCreatedPayload accompanies user creation events.
type UserCreatedPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

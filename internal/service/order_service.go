package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/erp-service/internal/domain"
	"github.com/spec-kit/erp-service/internal/events"
	"github.com/spec-kit/erp-service/internal/repository"
	apperrors "github.com/spec-kit/erp-service/pkg/util"
)

// OrderLineInput is one requested {productId, quantity} entry.
type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// OrderInput carries client-supplied order fields. Any client-supplied total
// never reaches this service; totals are derived from the catalog.
type OrderInput struct {
	Products []OrderLineInput
	Status   string
}

// ResolvedLine pairs a stored line with its catalog referent, nil when the
// product has been deleted since the order was written.
type ResolvedLine struct {
	Line    domain.OrderLine
	Product *domain.Product
}

// ResolvedOrder is an order joined with its user and product referents for
// display. Missing referents are nil, never an error.
type ResolvedOrder struct {
	Order domain.Order
	User  *domain.User
	Lines []ResolvedLine
}

// OrderService implements order processing: validation, authoritative
// repricing from the catalog, and persistence.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:     orders,
		products:   products,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create validates the request, prices every line from the catalog and
// persists the order in one write. The owner is the authenticated caller.
func (s *OrderService) Create(ctx context.Context, userID string, in OrderInput) (*ResolvedOrder, error) {
	lines, total, err := s.priceLines(ctx, in.Products)
	if err != nil {
		return nil, err
	}

	status := domain.OrderStatusPending
	if in.Status != "" {
		status = domain.OrderStatus(in.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Invalid status: must be pending or completed", nil)
		}
	}

	order := &domain.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		Products: lines,
		Total:    total,
		Status:   status,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("total", order.Total.String()),
	)
	s.publishOrderEvent(ctx, events.EventOrderCreated, order, userID)
	return s.resolve(ctx, order)
}

// Update revalidates and reprices the whole order from current catalog state;
// there is no locking in of historical prices. An omitted status preserves the
// order's current status. Ownership is not reassigned.
//
// The read-price/write-order sequence is not isolated: a concurrent price
// change or order update races and the last writer wins.
func (s *OrderService) Update(ctx context.Context, id string, callerID string, in OrderInput) (*ResolvedOrder, error) {
	lines, total, err := s.priceLines(ctx, in.Products)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return nil, err
	}

	if in.Status != "" {
		status := domain.OrderStatus(in.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("Invalid status: must be pending or completed", nil)
		}
		order.Status = status
	}

	order.Products = lines
	order.Total = total
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order updated",
		zap.String("order_id", order.ID),
		zap.String("total", order.Total.String()),
	)
	s.publishOrderEvent(ctx, events.EventOrderUpdated, order, callerID)
	return s.resolve(ctx, order)
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string, callerID string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return err
	}
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderDeleted,
		EntityID:  id,
		ActorID:   callerID,
		Timestamp: time.Now(),
	})
	return nil
}

// GetByID returns one order with referents resolved.
func (s *OrderService) GetByID(ctx context.Context, id string) (*ResolvedOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": id})
		}
		return nil, err
	}
	return s.resolve(ctx, order)
}

// List returns all orders with referents resolved.
func (s *OrderService) List(ctx context.Context) ([]ResolvedOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]ResolvedOrder, 0, len(orders))
	for i := range orders {
		one, err := s.resolve(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *one)
	}
	return resolved, nil
}

// priceLines validates line items and accumulates the authoritative total
// from current catalog prices. Any missing product aborts the whole
// operation; nothing partial is ever committed.
func (s *OrderService) priceLines(ctx context.Context, inputs []OrderLineInput) ([]domain.OrderLine, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, apperrors.NewValidationError(
			"Invalid input: non-empty products array is required", nil)
	}

	lines := make([]domain.OrderLine, 0, len(inputs))
	total := decimal.Zero
	for _, item := range inputs {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, decimal.Zero, apperrors.NewValidationError(
				"Each product must have a valid productId and quantity (>0)", nil)
		}
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, decimal.Zero, apperrors.NewProductNotFound(item.ProductID)
			}
			return nil, decimal.Zero, err
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	// Defensive check against corrupt catalog data.
	if total.IsNegative() {
		return nil, decimal.Zero, apperrors.NewValidationError("Invalid total calculated", nil)
	}
	return lines, total, nil
}

// resolve joins an order with its referents. A missing row renders a nil
// referent; any other repository error aborts the read.
func (s *OrderService) resolve(ctx context.Context, order *domain.Order) (*ResolvedOrder, error) {
	resolved := &ResolvedOrder{Order: *order}

	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	resolved.User = user

	seen := make(map[string]*domain.Product, len(order.Products))
	for _, line := range order.Products {
		product, ok := seen[line.ProductID]
		if !ok {
			product, err = s.products.GetByID(ctx, line.ProductID)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			seen[line.ProductID] = product
		}
		resolved.Lines = append(resolved.Lines, ResolvedLine{Line: line, Product: product})
	}
	return resolved, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, eventType events.EventType, order *domain.Order, actorID string) {
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  order.ID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.OrderWrittenPayload{
			UserID:    order.UserID,
			Total:     order.Total,
			Status:    order.Status,
			LineCount: len(order.Products),
		},
	})
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/erp-service/internal/domain"
)

// OrderRepository encapsulates order persistence. Create and Update write the
// whole order in a single row so no partial order state is ever observable.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation. Line items are
// stored as a JSONB snapshot of {productId, quantity} references.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	lines, err := json.Marshal(order.Products)
	if err != nil {
		return fmt.Errorf("marshal order lines: %w", err)
	}

	const query = `
        INSERT INTO orders (id, user_id, products, total, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		order.ID,
		order.UserID,
		lines,
		order.Total,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	lines, err := json.Marshal(order.Products)
	if err != nil {
		return fmt.Errorf("marshal order lines: %w", err)
	}

	// Last writer wins: no version token guards the read-price/write-order
	// window (see DESIGN.md).
	const query = `
        UPDATE orders SET user_id=$1, products=$2, total=$3, status=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		order.UserID,
		lines,
		order.Total,
		order.Status,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, user_id, products, total, status, created_at, updated_at
        FROM orders WHERE id=$1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, products, total, status, created_at, updated_at
        FROM orders ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order domain.Order
		lines []byte
	)
	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&lines,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &order.Products); err != nil {
		return nil, fmt.Errorf("unmarshal order lines: %w", err)
	}
	return &order, nil
}

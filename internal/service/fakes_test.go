package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/erp-service/internal/domain"
)

// In-memory repository fakes. They return pgx.ErrNoRows for missing rows,
// matching the Postgres implementations.

type fakeUserRepo struct {
	users  map[string]domain.User
	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

type fakeProductRepo struct {
	products map[string]domain.Product
	getErr   error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]domain.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := product
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	return products, nil
}

type fakeOrderRepo struct {
	orders map[string]domain.Order
	writes int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]domain.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	r.writes++
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	r.writes++
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

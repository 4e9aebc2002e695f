package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/pkg/apperror"

	"github.com/google/uuid"
)

// Carts is an in-memory repository.CartRepository keyed by owner.
type Carts struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*entity.Cart
}

var _ repository.CartRepository = (*Carts)(nil)

func NewCarts() *Carts {
	return &Carts{carts: map[uuid.UUID]*entity.Cart{}}
}

func copyCart(c *entity.Cart) *entity.Cart {
	out := *c
	out.Products = append([]entity.LineItem(nil), c.Products...)
	if c.TotalAfterDiscount != nil {
		total := *c.TotalAfterDiscount
		out.TotalAfterDiscount = &total
	}
	return &out
}

func (r *Carts) Create(_ context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.OrderBy]; ok {
		return fmt.Errorf("cart for user %s already exists", cart.OrderBy)
	}
	r.carts[cart.OrderBy] = copyCart(cart)
	return nil
}

func (r *Carts) FindByOwner(_ context.Context, userID uuid.UUID) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.carts[userID]; ok {
		return copyCart(c), nil
	}
	return nil, nil
}

func (r *Carts) SetDiscountedTotal(_ context.Context, userID uuid.UUID, total float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return fmt.Errorf("cart of user %s not found", userID)
	}
	c.TotalAfterDiscount = &total
	return nil
}

func (r *Carts) DeleteByOwner(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

// Orders is an in-memory repository.OrderRepository.
type Orders struct {
	mu     sync.Mutex
	orders []*entity.Order
}

var _ repository.OrderRepository = (*Orders)(nil)

func NewOrders() *Orders {
	return &Orders{}
}

func copyOrder(o *entity.Order) *entity.Order {
	out := *o
	out.Products = append([]entity.LineItem(nil), o.Products...)
	return &out
}

func (r *Orders) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, copyOrder(order))
	return nil
}

func (r *Orders) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == id {
			return copyOrder(o), nil
		}
	}
	return nil, nil
}

func (r *Orders) FindByOwner(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.orders {
		if o.OrderBy == userID {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *Orders) FindAll(_ context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = copyOrder(o)
	}
	return out, nil
}

func (r *Orders) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == id {
			o.OrderStatus = status
			o.PaymentIntent.Status = status
			o.UpdatedAt = time.Now()
			return copyOrder(o), nil
		}
	}
	return nil, apperror.ErrOrderNotFound
}

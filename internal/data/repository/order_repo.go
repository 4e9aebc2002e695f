package repository

import (
	"context"
	"fmt"

	"shop-backend/internal/data/entity"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	FindAll(ctx context.Context) ([]*entity.Order, error)
	// UpdateStatus changes the order status and the payment intent status, nothing else.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}

const orderColumns = `id, order_by, products, payment_intent, order_status, created_at, updated_at`

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.OrderBy,
		&order.Products,
		&order.PaymentIntent,
		&order.OrderStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_by, products, payment_intent, order_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.OrderBy,
		order.Products,
		order.PaymentIntent,
		order.OrderStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_by", order.OrderBy.String()),
		)
		return fmt.Errorf("create order for user %s: %w", order.OrderBy.String(), err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}
	return order, nil
}

func (r *orderRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_by = $1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	query := `
		UPDATE orders
		SET order_status = $2,
		    payment_intent = jsonb_set(payment_intent, '{status}', to_jsonb($2::text)),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns

	order, err := scanOrder(r.db.QueryRow(ctx, query, id, string(status)))
	if err == pgx.ErrNoRows {
		return nil, apperror.ErrOrderNotFound
	}
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update status of order %s: %w", id.String(), err)
	}
	return order, nil
}

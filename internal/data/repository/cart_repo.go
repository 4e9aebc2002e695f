package repository

import (
	"context"
	"fmt"

	"shop-backend/internal/data/entity"
	"shop-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CartRepository keeps at most one cart per owner.
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	FindByOwner(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	SetDiscountedTotal(ctx context.Context, userID uuid.UUID, total float64) error
	DeleteByOwner(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	query := `
		INSERT INTO carts (id, order_by, products, cart_total, total_after_discount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		cart.ID,
		cart.OrderBy,
		cart.Products,
		cart.CartTotal,
		cart.TotalAfterDiscount,
		cart.CreatedAt,
		cart.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create cart",
			zap.Error(err),
			zap.String("order_by", cart.OrderBy.String()),
		)
		return fmt.Errorf("create cart for user %s: %w", cart.OrderBy.String(), err)
	}
	return nil
}

func (r *cartRepository) FindByOwner(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	query := `
		SELECT id, order_by, products, cart_total, total_after_discount, created_at, updated_at
		FROM carts
		WHERE order_by = $1
	`

	var cart entity.Cart
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&cart.ID,
		&cart.OrderBy,
		&cart.Products,
		&cart.CartTotal,
		&cart.TotalAfterDiscount,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart", zap.Error(err), zap.String("order_by", userID.String()))
		return nil, fmt.Errorf("find cart of user %s: %w", userID.String(), err)
	}
	return &cart, nil
}

func (r *cartRepository) SetDiscountedTotal(ctx context.Context, userID uuid.UUID, total float64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE carts SET total_after_discount = $2, updated_at = NOW() WHERE order_by = $1`,
		userID, total,
	)
	if err != nil {
		r.log.Error("Failed to set discounted total", zap.Error(err), zap.String("order_by", userID.String()))
		return fmt.Errorf("set discounted total for user %s: %w", userID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart of user %s not found", userID.String())
	}
	return nil
}

func (r *cartRepository) DeleteByOwner(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM carts WHERE order_by = $1`, userID); err != nil {
		r.log.Error("Failed to delete cart", zap.Error(err), zap.String("order_by", userID.String()))
		return fmt.Errorf("delete cart of user %s: %w", userID.String(), err)
	}
	return nil
}

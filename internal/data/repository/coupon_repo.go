package repository

import (
	"context"
	"fmt"
	"strings"

	"shop-backend/internal/data/entity"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	FindByName(ctx context.Context, name string) (*entity.Coupon, error)
	FindAll(ctx context.Context) ([]*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type couponRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCouponRepository(db database.PgxIface, log *zap.Logger) CouponRepository {
	return &couponRepository{
		db:  db,
		log: log.With(zap.String("repository", "coupon")),
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	query := `
		INSERT INTO coupons (id, name, expiry, discount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Name,
		coupon.Expiry,
		coupon.Discount,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.ErrConflict.WithMessage("coupon %q already exists", coupon.Name)
	}
	if err != nil {
		r.log.Error("Failed to create coupon", zap.Error(err), zap.String("name", coupon.Name))
		return fmt.Errorf("create coupon %s: %w", coupon.Name, err)
	}
	return nil
}

func (r *couponRepository) findOne(ctx context.Context, where string, arg any) (*entity.Coupon, error) {
	query := `SELECT id, name, expiry, discount, created_at, updated_at FROM coupons WHERE ` + where

	var coupon entity.Coupon
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&coupon.ID,
		&coupon.Name,
		&coupon.Expiry,
		&coupon.Discount,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon", zap.Error(err), zap.Any("arg", arg))
		return nil, fmt.Errorf("find coupon where %s: %w", where, err)
	}
	return &coupon, nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByName matches case-insensitively; names are stored upper-cased.
func (r *couponRepository) FindByName(ctx context.Context, name string) (*entity.Coupon, error) {
	return r.findOne(ctx, "name = $1", strings.ToUpper(strings.TrimSpace(name)))
}

func (r *couponRepository) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, expiry, discount, created_at, updated_at FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error("Failed to list coupons", zap.Error(err))
		return nil, fmt.Errorf("list coupons: %w", err)
	}

	coupons, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[entity.Coupon])
	if err != nil {
		return nil, fmt.Errorf("collect coupon rows: %w", err)
	}
	return coupons, nil
}

func (r *couponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	query := `UPDATE coupons SET name = $2, expiry = $3, discount = $4, updated_at = $5 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, coupon.ID, coupon.Name, coupon.Expiry, coupon.Discount, coupon.UpdatedAt)
	if isUniqueViolation(err) {
		return apperror.ErrConflict.WithMessage("coupon %q already exists", coupon.Name)
	}
	if err != nil {
		r.log.Error("Failed to update coupon", zap.Error(err), zap.String("coupon_id", coupon.ID.String()))
		return fmt.Errorf("update coupon %s: %w", coupon.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.ErrNotFound.WithDetails("coupon " + coupon.ID.String())
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete coupon", zap.Error(err), zap.String("coupon_id", id.String()))
		return fmt.Errorf("delete coupon %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.ErrNotFound.WithDetails("coupon " + id.String())
	}
	return nil
}

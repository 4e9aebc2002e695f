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

// CategoryRepository stores titled catalog groupings. Product categories and brands share it.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BrandRepository = CategoryRepository

type categoryRepository struct {
	db    database.PgxIface
	table string
	log   *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return newTitleRepository(db, "categories", log)
}

func NewBrandRepository(db database.PgxIface, log *zap.Logger) BrandRepository {
	return newTitleRepository(db, "brands", log)
}

func newTitleRepository(db database.PgxIface, table string, log *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:    db,
		table: table,
		log:   log.With(zap.String("repository", table)),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`, r.table)

	_, err := r.db.Exec(ctx, query, category.ID, category.Title, category.CreatedAt, category.UpdatedAt)
	if isUniqueViolation(err) {
		return apperror.ErrConflict.WithMessage("%q already exists", category.Title)
	}
	if err != nil {
		r.log.Error("Failed to create", zap.Error(err), zap.String("title", category.Title))
		return fmt.Errorf("create %s %s: %w", r.table, category.Title, err)
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := fmt.Sprintf(`SELECT id, title, created_at, updated_at FROM %s WHERE id = $1`, r.table)

	var category entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Title,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find by ID", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("find %s by ID %s: %w", r.table, id.String(), err)
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	query := fmt.Sprintf(`SELECT id, title, created_at, updated_at FROM %s ORDER BY title`, r.table)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list", zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[entity.Category])
	if err != nil {
		return nil, fmt.Errorf("collect %s rows: %w", r.table, err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := fmt.Sprintf(`UPDATE %s SET title = $2, updated_at = $3 WHERE id = $1`, r.table)

	result, err := r.db.Exec(ctx, query, category.ID, category.Title, category.UpdatedAt)
	if isUniqueViolation(err) {
		return apperror.ErrConflict.WithMessage("%q already exists", category.Title)
	}
	if err != nil {
		r.log.Error("Failed to update", zap.Error(err), zap.String("id", category.ID.String()))
		return fmt.Errorf("update %s %s: %w", r.table, category.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		r.log.Error("Failed to delete", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete %s %s: %w", r.table, id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)
	List(ctx context.Context, q request.ListQuery) ([]*entity.Product, error)
	Count(ctx context.Context, q request.ListQuery) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Ratings
	UpsertRating(ctx context.Context, rating *entity.Rating) error
	Ratings(ctx context.Context, productID uuid.UUID) ([]entity.Rating, error)
	SetTotalRating(ctx context.Context, productID uuid.UUID, total int) error

	// AdjustInventory moves count units of each line item from quantity to sold.
	AdjustInventory(ctx context.Context, items []entity.LineItem) error
}

var productSchema = listSchema{
	columns: map[string]column{
		"title":        {"title", kindText},
		"slug":         {"slug", kindText},
		"category":     {"category", kindText},
		"brand":        {"brand", kindText},
		"color":        {"color", kindText},
		"price":        {"price", kindNumber},
		"quantity":     {"quantity", kindInt},
		"sold":         {"sold", kindInt},
		"total_rating": {"total_rating", kindInt},
		"created_at":   {"created_at", kindTime},
		"updated_at":   {"updated_at", kindTime},
	},
	aliases: map[string]string{
		"totalrating": "total_rating",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	},
}

const productColumns = `id, title, slug, description, price, category, brand, quantity, sold,
	images, color, total_rating, created_at, updated_at`

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var product entity.Product
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Brand,
		&product.Quantity,
		&product.Sold,
		&product.Images,
		&product.Color,
		&product.TotalRating,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, title, slug, description, price, category, brand,
		                      quantity, sold, images, color, total_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.Brand,
		product.Quantity,
		product.Sold,
		imagesOrEmpty(product.Images),
		product.Color,
		product.TotalRating,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.ErrConflict.WithMessage("product slug %q already exists", product.Slug)
	}
	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("title", product.Title),
		)
		return fmt.Errorf("create product %s: %w", product.Title, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	ratings, err := r.Ratings(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Ratings = ratings

	return product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	return r.query(ctx, query, ids)
}

func (r *productRepository) List(ctx context.Context, q request.ListQuery) ([]*entity.Product, error) {
	query, _, args, err := productSchema.listSQL(productColumns, "products", q)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *productRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query products", zap.Error(err))
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	r.log.Debug("Products found", zap.Int("count", len(products)))

	return products, nil
}

func (r *productRepository) Count(ctx context.Context, q request.ListQuery) (int64, error) {
	_, query, args, err := productSchema.listSQL(productColumns, "products", q)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET title = $2, slug = $3, description = $4, price = $5, category = $6,
		    brand = $7, quantity = $8, images = $9, color = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.Brand,
		product.Quantity,
		imagesOrEmpty(product.Images),
		product.Color,
		product.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.ErrConflict.WithMessage("product slug %q already exists", product.Slug)
	}
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.ErrProductNotFound
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// UpsertRating overwrites the rater's existing star and comment, or inserts a new rating.
func (r *productRepository) UpsertRating(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO product_ratings (product_id, posted_by, star, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, posted_by)
		DO UPDATE SET star = EXCLUDED.star, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		rating.ProductID,
		rating.PostedBy,
		rating.Star,
		rating.Comment,
		rating.CreatedAt,
		rating.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("product_id", rating.ProductID.String()),
			zap.String("posted_by", rating.PostedBy.String()),
		)
		return fmt.Errorf("upsert rating for product %s by %s: %w",
			rating.ProductID.String(), rating.PostedBy.String(), err)
	}
	return nil
}

func (r *productRepository) Ratings(ctx context.Context, productID uuid.UUID) ([]entity.Rating, error) {
	query := `
		SELECT product_id, posted_by, star, comment, created_at, updated_at
		FROM product_ratings
		WHERE product_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		r.log.Error("Failed to get ratings", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, fmt.Errorf("get ratings for product %s: %w", productID.String(), err)
	}

	ratings, err := pgx.CollectRows(rows, pgx.RowToStructByName[entity.Rating])
	if err != nil {
		return nil, fmt.Errorf("collect rating rows: %w", err)
	}
	return ratings, nil
}

func (r *productRepository) SetTotalRating(ctx context.Context, productID uuid.UUID, total int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE products SET total_rating = $2, updated_at = NOW() WHERE id = $1`,
		productID, total,
	)
	if err != nil {
		r.log.Error("Failed to update total rating",
			zap.Error(err),
			zap.String("product_id", productID.String()),
			zap.Int("total_rating", total),
		)
		return fmt.Errorf("update total rating for product %s: %w", productID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.ErrProductNotFound
	}
	return nil
}

// AdjustInventory sends one update per line item in a single batch. Items are not applied atomically.
func (r *productRepository) AdjustInventory(ctx context.Context, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(
			`UPDATE products SET quantity = quantity - $2, sold = sold + $2, updated_at = NOW() WHERE id = $1`,
			item.Product, item.Count,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, item := range items {
		if _, err := results.Exec(); err != nil {
			r.log.Error("Failed to adjust inventory",
				zap.Error(err),
				zap.String("product_id", item.Product.String()),
				zap.Int("count", item.Count),
			)
			return fmt.Errorf("adjust inventory for product %s: %w", item.Product.String(), err)
		}
	}
	return nil
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

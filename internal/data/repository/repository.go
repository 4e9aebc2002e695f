package repository

import (
	"shop-backend/pkg/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Product      ProductRepository
	Category     CategoryRepository
	Brand        BrandRepository
	Coupon       CouponRepository
	Cart         CartRepository
	Order        OrderRepository
	Blog         BlogRepository
	BlogCategory BlogCategoryRepository
}

// NewRepository builds the relational stores on db and the content stores on content.
func NewRepository(db database.PgxIface, content *mongo.Database, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Product:      NewProductRepository(db, log),
		Category:     NewCategoryRepository(db, log),
		Brand:        NewBrandRepository(db, log),
		Coupon:       NewCouponRepository(db, log),
		Cart:         NewCartRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Blog:         NewBlogRepository(content, log),
		BlogCategory: NewBlogCategoryRepository(content, log),
	}
}

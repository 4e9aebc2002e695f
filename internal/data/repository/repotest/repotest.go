package repotest

import "shop-backend/internal/data/repository"

// Store bundles the in-memory repositories so tests can seed and inspect them directly.
type Store struct {
	Users          *Users
	Products       *Products
	Categories     *Titles
	Brands         *Titles
	Coupons        *Coupons
	Carts          *Carts
	Orders         *Orders
	Blogs          *Blogs
	BlogCategories *BlogCategories
}

func NewStore() *Store {
	return &Store{
		Users:          NewUsers(),
		Products:       NewProducts(),
		Categories:     NewTitles(),
		Brands:         NewTitles(),
		Coupons:        NewCoupons(),
		Carts:          NewCarts(),
		Orders:         NewOrders(),
		Blogs:          NewBlogs(),
		BlogCategories: NewBlogCategories(),
	}
}

// Repository exposes the store through the production aggregate.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:         s.Users,
		Product:      s.Products,
		Category:     s.Categories,
		Brand:        s.Brands,
		Coupon:       s.Coupons,
		Cart:         s.Carts,
		Order:        s.Orders,
		Blog:         s.Blogs,
		BlogCategory: s.BlogCategories,
	}
}

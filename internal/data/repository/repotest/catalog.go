package repotest

import (
	"context"
	"strings"
	"sync"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"

	"github.com/google/uuid"
)

// Products is an in-memory repository.ProductRepository.
type Products struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	order    []uuid.UUID
	ratings  map[uuid.UUID][]entity.Rating

	// AdjustErr, when set, is returned by AdjustInventory without touching stock.
	AdjustErr error
}

var _ repository.ProductRepository = (*Products)(nil)

func NewProducts(products ...*entity.Product) *Products {
	r := &Products{
		products: map[uuid.UUID]*entity.Product{},
		ratings:  map[uuid.UUID][]entity.Rating{},
	}
	for _, p := range products {
		r.products[p.ID] = copyProduct(p)
		r.order = append(r.order, p.ID)
	}
	return r
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Images = append([]string(nil), p.Images...)
	c.Ratings = append([]entity.Rating(nil), p.Ratings...)
	return &c
}

func (r *Products) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Slug == product.Slug {
			return apperror.ErrConflict.WithMessage("product slug %q already exists", product.Slug)
		}
	}
	r.products[product.ID] = copyProduct(product)
	r.order = append(r.order, product.ID)
	return nil
}

func (r *Products) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	out := copyProduct(p)
	out.Ratings = append([]entity.Rating(nil), r.ratings[id]...)
	return out, nil
}

func (r *Products) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func (r *Products) List(_ context.Context, q request.ListQuery) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Product
	for _, id := range page(r.order, q) {
		out = append(out, copyProduct(r.products[id]))
	}
	return out, nil
}

func (r *Products) Count(_ context.Context, _ request.ListQuery) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.order)), nil
}

func (r *Products) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperror.ErrProductNotFound
	}
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *Products) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperror.ErrProductNotFound
	}
	delete(r.products, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Products) UpsertRating(_ context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.ratings[rating.ProductID]
	for i := range list {
		if list[i].PostedBy == rating.PostedBy {
			list[i].Star = rating.Star
			list[i].Comment = rating.Comment
			list[i].UpdatedAt = rating.UpdatedAt
			return nil
		}
	}
	r.ratings[rating.ProductID] = append(list, *rating)
	return nil
}

func (r *Products) Ratings(_ context.Context, productID uuid.UUID) ([]entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Rating(nil), r.ratings[productID]...), nil
}

func (r *Products) SetTotalRating(_ context.Context, productID uuid.UUID, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return apperror.ErrProductNotFound
	}
	p.TotalRating = total
	return nil
}

func (r *Products) AdjustInventory(_ context.Context, items []entity.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.AdjustErr != nil {
		return r.AdjustErr
	}
	for _, item := range items {
		if p, ok := r.products[item.Product]; ok {
			p.Quantity -= item.Count
			p.Sold += item.Count
		}
	}
	return nil
}

// Titles is an in-memory repository.CategoryRepository, used for brands as well.
type Titles struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Category
}

var _ repository.CategoryRepository = (*Titles)(nil)

func NewTitles() *Titles {
	return &Titles{items: map[uuid.UUID]*entity.Category{}}
}

func (r *Titles) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.items {
		if c.Title == category.Title {
			return apperror.ErrConflict.WithMessage("%q already exists", category.Title)
		}
	}
	c := *category
	r.items[category.ID] = &c
	return nil
}

func (r *Titles) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.items[id]; ok {
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (r *Titles) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Category
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Titles) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[category.ID]; !ok {
		return apperror.ErrNotFound
	}
	c := *category
	r.items[category.ID] = &c
	return nil
}

func (r *Titles) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Coupons is an in-memory repository.CouponRepository.
type Coupons struct {
	mu      sync.Mutex
	coupons map[uuid.UUID]*entity.Coupon
}

var _ repository.CouponRepository = (*Coupons)(nil)

func NewCoupons(coupons ...*entity.Coupon) *Coupons {
	r := &Coupons{coupons: map[uuid.UUID]*entity.Coupon{}}
	for _, c := range coupons {
		cp := *c
		r.coupons[c.ID] = &cp
	}
	return r
}

func (r *Coupons) Create(_ context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.coupons {
		if c.Name == coupon.Name {
			return apperror.ErrConflict.WithMessage("coupon %q already exists", coupon.Name)
		}
	}
	c := *coupon
	r.coupons[coupon.ID] = &c
	return nil
}

func (r *Coupons) FindByID(_ context.Context, id uuid.UUID) (*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.coupons[id]; ok {
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (r *Coupons) FindByName(_ context.Context, name string) (*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToUpper(strings.TrimSpace(name))
	for _, c := range r.coupons {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *Coupons) FindAll(_ context.Context) ([]*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Coupon
	for _, c := range r.coupons {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Coupons) Update(_ context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[coupon.ID]; !ok {
		return apperror.ErrNotFound
	}
	c := *coupon
	r.coupons[coupon.ID] = &c
	return nil
}

func (r *Coupons) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.coupons, id)
	return nil
}

package usecase

import (
	"context"
	"errors"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, req *request.CreateProductRequest) (*response.ProductResponse, error)
	Get(ctx context.Context, productID string) (*response.ProductResponse, error)
	List(ctx context.Context, q request.ListQuery) (*response.PaginatedResponse[response.ProductResponse], error)
	Update(ctx context.Context, productID string, req *request.UpdateProductRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, productID string) error

	// Rate records or replaces the rater's rating and recomputes the product aggregate.
	Rate(ctx context.Context, raterID string, req *request.RatingRequest) (*response.ProductResponse, error)
	// ToggleWishlist adds the product to the user's wishlist, or removes it when present.
	ToggleWishlist(ctx context.Context, userID string, req *request.WishlistRequest) (*response.WishlistResponse, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) Create(ctx context.Context, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create product validation failed", zap.Error(err))
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	product := &entity.Product{
		Base:        entity.NewBase(nowUTC()),
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Quantity:    req.Quantity,
		Images:      req.Images,
		Color:       req.Color,
	}
	if err := s.repo.Product.Create(ctx, product); err != nil {
		return nil, upstream(err)
	}

	s.log.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("slug", slug))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) find(ctx context.Context, productID string) (*entity.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, productID string) (*response.ProductResponse, error) {
	product, err := s.find(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, q request.ListQuery) (*response.PaginatedResponse[response.ProductResponse], error) {
	total, err := s.repo.Product.Count(ctx, q)
	if err != nil {
		return nil, upstream(err)
	}
	if q.OutOfRange(total) {
		return nil, apperror.ErrPageOutOfRange
	}

	products, err := s.repo.Product.List(ctx, q)
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err), zap.Int("page", q.Page))
		return nil, upstream(err)
	}

	return response.NewPaginatedResponse(response.ProductsToResponse(products), q.Page, q.Limit(), total), nil
}

func (s *productService) Update(ctx context.Context, productID string, req *request.UpdateProductRequest) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.find(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
		product.Slug = utils.Slugify(*req.Title)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	product.UpdatedAt = nowUTC()

	if err := s.repo.Product.Update(ctx, product); err != nil {
		return nil, upstream(err)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, productID string) error {
	id, err := parseID(productID)
	if err != nil {
		return err
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		return upstream(err)
	}
	return nil
}

func (s *productService) Rate(ctx context.Context, raterID string, req *request.RatingRequest) (*response.ProductResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	rater, err := parseID(raterID)
	if err != nil {
		return nil, err
	}

	// 2. Product must exist
	product, err := s.find(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 3. Insert or overwrite this rater's rating
	now := nowUTC()
	rating := &entity.Rating{
		ProductID: product.ID,
		PostedBy:  rater,
		Star:      req.Star,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Product.UpsertRating(ctx, rating); err != nil {
		return nil, upstream(err)
	}

	// 4. Recompute the aggregate over the stored ratings
	ratings, err := s.repo.Product.Ratings(ctx, product.ID)
	if err != nil {
		return nil, upstream(err)
	}

	stars := make([]int, len(ratings))
	for i, r := range ratings {
		stars[i] = r.Star
	}
	total, err := averageRating(stars)
	if errors.Is(err, ErrNoRatings) {
		total = 0
	}

	if err := s.repo.Product.SetTotalRating(ctx, product.ID, total); err != nil {
		return nil, upstream(err)
	}

	s.log.Info("Product rated",
		zap.String("product_id", product.ID.String()),
		zap.String("rater_id", rater.String()),
		zap.Int("star", req.Star),
		zap.Int("total_rating", total),
	)

	product.Ratings = ratings
	product.TotalRating = total
	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) ToggleWishlist(ctx context.Context, userID string, req *request.WishlistRequest) (*response.WishlistResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	product, err := s.find(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	present, err := s.repo.User.WishlistContains(ctx, uid, product.ID)
	if err != nil {
		return nil, upstream(err)
	}

	if present {
		err = s.repo.User.RemoveFromWishlist(ctx, uid, product.ID)
	} else {
		err = s.repo.User.AddToWishlist(ctx, uid, product.ID)
	}
	if err != nil {
		return nil, upstream(err)
	}

	return wishlistResponse(ctx, s.repo, uid)
}

// wishlistResponse loads the user's wishlist with the products populated.
func wishlistResponse(ctx context.Context, repo *repository.Repository, userID uuid.UUID) (*response.WishlistResponse, error) {
	user, err := repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, upstream(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	ids, err := repo.User.Wishlist(ctx, userID)
	if err != nil {
		return nil, upstream(err)
	}

	products, err := repo.Product.FindByIDs(ctx, ids)
	if err != nil {
		return nil, upstream(err)
	}

	return &response.WishlistResponse{
		UserID:   userID.String(),
		Wishlist: response.ProductsToResponse(products),
	}, nil
}

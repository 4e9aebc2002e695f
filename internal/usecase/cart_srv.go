package usecase

import (
	"context"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	// SetCart replaces the user's cart, capturing current product prices.
	SetCart(ctx context.Context, userID string, req *request.SetCartRequest) (*response.CartResponse, error)
	GetCart(ctx context.Context, userID string) (*response.CartResponse, error)
	EmptyCart(ctx context.Context, userID string) error
	// ApplyCoupon stores the discounted total next to the original one.
	ApplyCoupon(ctx context.Context, userID string, req *request.ApplyCouponRequest) (*response.CartResponse, error)
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) SetCart(ctx context.Context, userID string, req *request.SetCartRequest) (*response.CartResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		return nil, err
	}

	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	// 2. Resolve each product's current price
	items := make([]entity.LineItem, 0, len(req.Cart))
	for _, it := range req.Cart {
		productID, err := parseID(it.ProductID)
		if err != nil {
			return nil, err
		}

		product, err := s.repo.Product.FindByID(ctx, productID)
		if err != nil {
			return nil, upstream(err)
		}
		if product == nil {
			return nil, apperror.ErrProductNotFound.WithDetails(it.ProductID)
		}

		items = append(items, entity.LineItem{
			Product: product.ID,
			Count:   it.Count,
			Color:   it.Color,
			Price:   product.Price,
		})
	}

	// 3. Replace any existing cart
	if err := s.repo.Cart.DeleteByOwner(ctx, owner); err != nil {
		return nil, upstream(err)
	}

	cart := &entity.Cart{
		Base:      entity.NewBase(nowUTC()),
		OrderBy:   owner,
		Products:  items,
		CartTotal: cartTotal(items),
	}
	if err := s.repo.Cart.Create(ctx, cart); err != nil {
		s.log.Error("Failed to create cart", zap.Error(err), zap.String("user_id", userID))
		return nil, upstream(err)
	}

	s.log.Info("Cart set",
		zap.String("user_id", userID),
		zap.Int("items", len(items)),
		zap.Float64("cart_total", cart.CartTotal),
	)

	resp := response.CartToResponse(cart)
	return &resp, nil
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*response.CartResponse, error) {
	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.activeCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	resp := response.CartToResponse(cart)
	return &resp, nil
}

func (s *cartService) EmptyCart(ctx context.Context, userID string) error {
	owner, err := parseID(userID)
	if err != nil {
		return err
	}

	if err := s.repo.Cart.DeleteByOwner(ctx, owner); err != nil {
		return upstream(err)
	}
	return nil
}

func (s *cartService) ApplyCoupon(ctx context.Context, userID string, req *request.ApplyCouponRequest) (*response.CartResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	owner, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	coupon, err := s.repo.Coupon.FindByName(ctx, req.Coupon)
	if err != nil {
		return nil, upstream(err)
	}
	if coupon == nil || coupon.Expired(nowUTC()) {
		s.log.Warn("Invalid coupon", zap.String("user_id", userID), zap.String("coupon", req.Coupon))
		return nil, apperror.ErrInvalidCoupon
	}

	cart, err := s.activeCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	// always discount the original total so reapplying is idempotent
	discounted := applyDiscount(cart.CartTotal, coupon.Discount)
	if err := s.repo.Cart.SetDiscountedTotal(ctx, owner, discounted); err != nil {
		return nil, upstream(err)
	}
	cart.TotalAfterDiscount = &discounted

	s.log.Info("Coupon applied",
		zap.String("user_id", userID),
		zap.String("coupon", coupon.Name),
		zap.Float64("total_after_discount", discounted),
	)

	resp := response.CartToResponse(cart)
	return &resp, nil
}

func (s *cartService) activeCart(ctx context.Context, owner uuid.UUID) (*entity.Cart, error) {
	cart, err := s.repo.Cart.FindByOwner(ctx, owner)
	if err != nil {
		return nil, upstream(err)
	}
	if cart == nil {
		return nil, apperror.ErrNoActiveCart
	}
	return cart, nil
}

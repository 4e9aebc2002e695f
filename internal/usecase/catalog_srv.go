package usecase

import (
	"context"
	"strings"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"

	"go.uber.org/zap"
)

// TitleService manages the title-only catalog groupings: product categories and brands.
type TitleService interface {
	Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	Get(ctx context.Context, id string) (*response.TitleResponse, error)
	List(ctx context.Context) ([]response.TitleResponse, error)
	Update(ctx context.Context, id string, req *request.TitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, id string) error
}

type titleService struct {
	repo repository.CategoryRepository
	kind string
	log  *zap.Logger
}

func NewTitleService(repo repository.CategoryRepository, kind string, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		kind: kind,
		log:  log.With(zap.String("service", kind)),
	}
}

func (s *titleService) notFound() error {
	return apperror.ErrNotFound.WithMessage("%s not found", s.kind)
}

func (s *titleService) Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item := &entity.Category{
		Base:  entity.NewBase(nowUTC()),
		Title: strings.TrimSpace(req.Title),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, upstream(err)
	}

	s.log.Info("Created", zap.String("id", item.ID.String()), zap.String("title", item.Title))

	resp := response.CategoryToResponse(item)
	return &resp, nil
}

func (s *titleService) Get(ctx context.Context, id string) (*response.TitleResponse, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, upstream(err)
	}
	if item == nil {
		return nil, s.notFound()
	}

	resp := response.CategoryToResponse(item)
	return &resp, nil
}

func (s *titleService) List(ctx context.Context) ([]response.TitleResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	out := make([]response.TitleResponse, len(items))
	for i, item := range items {
		out[i] = response.CategoryToResponse(item)
	}
	return out, nil
}

func (s *titleService) Update(ctx context.Context, id string, req *request.TitleRequest) (*response.TitleResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, upstream(err)
	}
	if item == nil {
		return nil, s.notFound()
	}

	item.Title = strings.TrimSpace(req.Title)
	item.UpdatedAt = nowUTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, upstream(err)
	}

	resp := response.CategoryToResponse(item)
	return &resp, nil
}

func (s *titleService) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		if apperror.Is(err, apperror.ErrNotFound) {
			return s.notFound()
		}
		return upstream(err)
	}
	return nil
}

type CouponService interface {
	Create(ctx context.Context, req *request.CreateCouponRequest) (*response.CouponResponse, error)
	Get(ctx context.Context, id string) (*response.CouponResponse, error)
	List(ctx context.Context) ([]response.CouponResponse, error)
	Update(ctx context.Context, id string, req *request.UpdateCouponRequest) (*response.CouponResponse, error)
	Delete(ctx context.Context, id string) error
}

type couponService struct {
	repo repository.CouponRepository
	log  *zap.Logger
}

func NewCouponService(repo repository.CouponRepository, log *zap.Logger) CouponService {
	return &couponService{
		repo: repo,
		log:  log.With(zap.String("service", "coupon")),
	}
}

func couponName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (s *couponService) Create(ctx context.Context, req *request.CreateCouponRequest) (*response.CouponResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	coupon := &entity.Coupon{
		Base:     entity.NewBase(nowUTC()),
		Name:     couponName(req.Name),
		Expiry:   req.Expiry,
		Discount: req.Discount,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, upstream(err)
	}

	s.log.Info("Coupon created",
		zap.String("name", coupon.Name),
		zap.Float64("discount", coupon.Discount),
		zap.Time("expiry", coupon.Expiry),
	)

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}

func (s *couponService) find(ctx context.Context, id string) (*entity.Coupon, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	coupon, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, upstream(err)
	}
	if coupon == nil {
		return nil, apperror.ErrNotFound.WithMessage("coupon not found")
	}
	return coupon, nil
}

func (s *couponService) Get(ctx context.Context, id string) (*response.CouponResponse, error) {
	coupon, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}

func (s *couponService) List(ctx context.Context) ([]response.CouponResponse, error) {
	coupons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	out := make([]response.CouponResponse, len(coupons))
	for i, c := range coupons {
		out[i] = response.CouponToResponse(c)
	}
	return out, nil
}

func (s *couponService) Update(ctx context.Context, id string, req *request.UpdateCouponRequest) (*response.CouponResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	coupon, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		coupon.Name = couponName(*req.Name)
	}
	if req.Expiry != nil {
		coupon.Expiry = *req.Expiry
	}
	if req.Discount != nil {
		coupon.Discount = *req.Discount
	}
	coupon.UpdatedAt = nowUTC()

	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, upstream(err)
	}

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		return upstream(err)
	}
	return nil
}

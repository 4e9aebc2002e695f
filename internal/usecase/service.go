package usecase

import (
	"time"

	"shop-backend/internal/data/repository"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/mailer"
	"shop-backend/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Product      ProductService
	Cart         CartService
	Order        OrderService
	Category     TitleService
	Brand        TitleService
	Coupon       CouponService
	Blog         BlogService
	BlogCategory BlogCategoryService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	tokens credential.TokenService,
	mail mailer.Mailer,
	log *zap.Logger,
) *Service {
	hasher := credential.NewBcryptHasher(config.Security.BcryptCost)

	return &Service{
		Auth:         NewAuthService(repo.User, tokens, hasher, mail, config, log),
		User:         NewUserService(repo, log),
		Product:      NewProductService(repo, log),
		Cart:         NewCartService(repo, log),
		Order:        NewOrderService(repo, log),
		Category:     NewTitleService(repo.Category, "category", log),
		Brand:        NewTitleService(repo.Brand, "brand", log),
		Coupon:       NewCouponService(repo.Coupon, log),
		Blog:         NewBlogService(repo.Blog, log),
		BlogCategory: NewBlogCategoryService(repo.BlogCategory, log),
	}
}

// validate runs struct tag validation and reports failures as a ValidationError.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation(utils.FormatValidationErrors(errs))
	}
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrInvalidID.WithDetails(raw)
	}
	return id, nil
}

func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperror.ErrInvalidID.WithDetails(raw)
	}
	return id, nil
}

// upstream passes AppErrors through and wraps anything else as an UpstreamFailure.
func upstream(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Upstream(err)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

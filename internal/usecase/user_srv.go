package usecase

import (
	"context"
	"strings"

	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"

	"go.uber.org/zap"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, q request.ListQuery) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	SaveAddress(ctx context.Context, userID string, req *request.SaveAddressRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	BlockUser(ctx context.Context, userID string) error
	UnblockUser(ctx context.Context, userID string) error
	GetWishlist(ctx context.Context, userID string) (*response.WishlistResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, upstream(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, q request.ListQuery) (*response.PaginatedResponse[response.UserResponse], error) {
	// Count first so an explicit page past the end is rejected rather than empty
	total, err := us.repo.User.Count(ctx, q)
	if err != nil {
		return nil, upstream(err)
	}
	if q.OutOfRange(total) {
		return nil, apperror.ErrPageOutOfRange
	}

	users, err := us.repo.User.List(ctx, q)
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", q.Page),
			zap.Int("limit", q.Limit()),
		)
		return nil, upstream(err)
	}

	data := make([]response.UserResponse, len(users))
	for i, user := range users {
		data[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", q.Page),
	)

	return response.NewPaginatedResponse(data, q.Page, q.Limit(), total), nil
}

func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	user.UpdatedAt = nowUTC()

	// unique constraints surface as EmailTaken / MobileTaken
	if err := us.repo.User.Update(ctx, user); err != nil {
		return nil, upstream(err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) SaveAddress(ctx context.Context, userID string, req *request.SaveAddressRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	user.Address = &req.Address
	user.UpdatedAt = nowUTC()
	if err := us.repo.User.Update(ctx, user); err != nil {
		return nil, upstream(err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	if err := us.repo.User.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID))
		return upstream(err)
	}

	us.log.Info("User deleted", zap.String("user_id", userID))
	return nil
}

func (us *userService) BlockUser(ctx context.Context, userID string) error {
	return us.setBlocked(ctx, userID, true)
}

func (us *userService) UnblockUser(ctx context.Context, userID string) error {
	return us.setBlocked(ctx, userID, false)
}

func (us *userService) setBlocked(ctx context.Context, userID string, blocked bool) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}

	if err := us.repo.User.SetBlocked(ctx, id, blocked); err != nil {
		return upstream(err)
	}

	us.log.Info("User block flag changed", zap.String("user_id", userID), zap.Bool("blocked", blocked))
	return nil
}

func (us *userService) GetWishlist(ctx context.Context, userID string) (*response.WishlistResponse, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	return wishlistResponse(ctx, us.repo, id)
}

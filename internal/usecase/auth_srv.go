package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/mailer"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response.AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error
	UpdatePassword(ctx context.Context, userID string, req *request.UpdatePasswordRequest) (*response.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens credential.TokenService
	hasher credential.PasswordHasher
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	tokens credential.TokenService,
	hasher credential.PasswordHasher,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    nowUTC,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email and mobile must be unused
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, upstream(err)
	}
	if existing != nil {
		return nil, apperror.ErrEmailTaken
	}

	existing, err = s.users.FindByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, upstream(err)
	}
	if existing != nil {
		return nil, apperror.ErrMobileTaken
	}

	// 3. Hash password
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Upstream(err)
	}

	// 4. Save user
	user := &entity.User{
		Base:         entity.NewBase(s.now()),
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, upstream(err)
	}

	s.log.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("email", email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	return s.login(ctx, req, entity.RoleUser)
}

// AdminLogin is Login restricted to admin and superAdmin accounts.
func (s *authService) AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	return s.login(ctx, req, entity.RoleAdmin)
}

func (s *authService) login(ctx context.Context, req *request.LoginRequest, required entity.UserRole) (*response.LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, upstream(err)
	}
	if user == nil || !s.hasher.Check(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.Role.Satisfies(required) {
		s.log.Warn("Login rejected, insufficient role",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(user.Role)),
			zap.String("required", string(required)),
		)
		return nil, apperror.ErrForbidden
	}
	if user.IsBlocked {
		return nil, apperror.ErrUserBlocked
	}

	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.Upstream(err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, upstream(err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	resp := response.LoginToResponse(user, access, refresh)
	return &resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*response.AccessTokenResponse, error) {
	if refreshToken == "" {
		return nil, apperror.ErrNoRefreshToken
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, upstream(err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken.WithDetails("refresh token not recognised")
	}

	subject, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil || subject != user.ID {
		s.log.Warn("Refresh token rejected", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, apperror.ErrInvalidToken
	}

	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	return &response.AccessTokenResponse{AccessToken: access}, nil
}

// Logout forgets the stored refresh token. An unknown token is not an error.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperror.ErrNoRefreshToken
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return upstream(err)
	}
	if user == nil {
		return nil
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, nil); err != nil {
		return upstream(err)
	}

	s.log.Info("User logged out", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return upstream(err)
	}
	if user == nil {
		return apperror.ErrUserNotFound.WithDetails(req.Email)
	}

	now := s.now()
	token, err := credential.IssueResetToken(now, s.config.Security.ResetTTL)
	if err != nil {
		return apperror.Upstream(err)
	}

	user.PasswordResetToken = &token.Hash
	user.PasswordResetExpires = &token.ExpiresAt
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to store reset token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return upstream(err)
	}

	link := strings.TrimSuffix(s.config.App.BaseURL, "/") + "/api/user/reset-password/" + token.Plain
	minutes := int(token.ExpiresAt.Sub(now).Minutes())
	msg := mailer.Message{
		To:      user.Email,
		Subject: "Forgot Password Link",
		Text:    fmt.Sprintf("Follow this link to reset your password. It is valid for %d minutes: %s", minutes, link),
		HTML: fmt.Sprintf(
			`Hi, please follow this link to reset your password. This link is valid till %d minutes from now. <a href="%s">Click Here</a>`,
			minutes, link,
		),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return apperror.Upstream(err)
	}

	s.log.Info("Password reset issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", token.ExpiresAt),
	)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	now := s.now()
	user, err := s.users.FindByResetToken(ctx, credential.HashResetToken(token), now)
	if err != nil {
		return upstream(err)
	}
	if user == nil {
		return apperror.ErrInvalidReset
	}

	if err := s.setPassword(ctx, user, req.Password, now); err != nil {
		return err
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID string, req *request.UpdatePasswordRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	if err := s.setPassword(ctx, user, req.Password, s.now()); err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// setPassword stores a new hash and consumes any outstanding reset token.
func (s *authService) setPassword(ctx context.Context, user *entity.User, password string, now time.Time) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperror.Upstream(err)
	}

	user.PasswordHash = hash
	user.PasswordChangedAt = &now
	user.ClearReset()
	user.UpdatedAt = now

	if err := s.users.Update(ctx, user); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", user.ID.String()))
		return upstream(err)
	}
	return nil
}

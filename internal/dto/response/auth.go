package response

import (
	"time"

	"shop-backend/internal/data/entity"
)

// LoginResponse is returned by login; the refresh token travels only in its cookie.
type LoginResponse struct {
	ID        string `json:"_id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Token     string `json:"token"`

	RefreshToken string `json:"-"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Firstname string          `json:"firstname"`
	Lastname  string          `json:"lastname"`
	Email     string          `json:"email"`
	Mobile    string          `json:"mobile"`
	Role      entity.UserRole `json:"role"`
	IsBlocked bool            `json:"is_blocked"`
	Address   *string         `json:"address,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Role:      user.Role,
		IsBlocked: user.IsBlocked,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func LoginToResponse(user *entity.User, accessToken, refreshToken string) LoginResponse {
	return LoginResponse{
		ID:           user.ID.String(),
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Email:        user.Email,
		Mobile:       user.Mobile,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}
}

type WishlistResponse struct {
	UserID   string            `json:"user_id"`
	Wishlist []ProductResponse `json:"wishlist"`
}

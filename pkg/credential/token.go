package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies signed bearer and refresh tokens.
type TokenService interface {
	IssueAccessToken(userID uuid.UUID) (string, error)
	IssueRefreshToken(userID uuid.UUID) (string, error)
	VerifyAccessToken(token string) (uuid.UUID, error)
	VerifyRefreshToken(token string) (uuid.UUID, error)
	RefreshTTL() time.Duration
}

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewJWTService(cfg TokenConfig) (TokenService, error) {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg TokenConfig, now func() time.Time) (*jwtService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 72 * time.Hour
	}
	return &jwtService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           now,
	}, nil
}

func (s *jwtService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.sign(userID, tokenTypeAccess, s.accessTTL, s.accessSecret)
}

func (s *jwtService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(userID, tokenTypeRefresh, s.refreshTTL, s.refreshSecret)
}

func (s *jwtService) VerifyAccessToken(token string) (uuid.UUID, error) {
	return s.verify(token, tokenTypeAccess, s.accessSecret)
}

func (s *jwtService) VerifyRefreshToken(token string) (uuid.UUID, error) {
	return s.verify(token, tokenTypeRefresh, s.refreshSecret)
}

func (s *jwtService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) sign(userID uuid.UUID, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"type": tokenType,
		// jti keeps two tokens issued in the same second distinct
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *jwtService) verify(tokenString, tokenType string, secret []byte) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != tokenType {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

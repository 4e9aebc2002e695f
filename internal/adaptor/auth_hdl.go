package adaptor

import (
	"context"
	"net/http"
	"time"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const refreshCookie = "refreshToken"

type AuthHandler struct {
	responder
	service    usecase.AuthService
	refreshTTL time.Duration
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	ttl := config.JWT.RefreshTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &AuthHandler{
		responder:  newResponder("auth", config, log),
		service:    service,
		refreshTTL: ttl,
	}
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		Expires:  time.Now().Add(h.refreshTTL),
		HttpOnly: true,
		Secure:   !h.debug,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.debug,
		SameSite: http.SameSiteLaxMode,
	})
}

func refreshTokenFrom(r *http.Request) string {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Register handles POST /api/user/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", user)
}

// Login handles POST /api/user/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.Login, "login")
}

// AdminLogin handles POST /api/user/admin-login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.service.AdminLogin, "admin login")
}

func (h *AuthHandler) login(
	w http.ResponseWriter,
	r *http.Request,
	login func(context.Context, *request.LoginRequest) (*response.LoginResponse, error),
	operation string,
) {
	var req request.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	h.setRefreshCookie(w, resp.RefreshToken)
	utils.ResponseSuccess(w, "Login successful", resp)
}

// RefreshToken handles GET /api/user/refresh-token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Refresh(r.Context(), refreshTokenFrom(r))
	if err != nil {
		h.handleServiceError(w, err, "refresh token")
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", resp)
}

// Logout handles GET /api/user/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		h.handleServiceError(w, apperror.ErrNoRefreshToken, "logout")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "logout")
		return
	}

	h.clearRefreshCookie(w)
	utils.ResponseNoContent(w)
}

// ForgotPassword handles POST /api/user/forgot-password-token
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "Password reset link sent", nil)
}

// ResetPassword handles PUT /api/user/reset-password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "token"), &req); err != nil {
		h.handleServiceError(w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password has been reset", nil)
}

// UpdatePassword handles PUT /api/user/password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdatePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.UpdatePassword(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update password")
		return
	}

	utils.ResponseSuccess(w, "Password updated", user)
}

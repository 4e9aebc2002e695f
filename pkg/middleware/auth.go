package middleware

import (
	"net/http"
	"strings"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the bearer access token and loads the caller's role.
func Authenticate(tokens credential.TokenService, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "There is no token attached to header")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// 2. Verify signature and expiry
			userID, err := tokens.VerifyAccessToken(token)
			if err != nil {
				logger.Warn("Rejected access token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Not authorized, token expired. Please login again")
				return
			}

			// 3. Subject must still exist
			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load token subject",
					zap.Error(err),
					zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "User no longer exists")
				return
			}
			if user.IsBlocked {
				utils.ResponseForbidden(w, "Your account is blocked")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after Authenticate. superAdmin satisfies admin.
func RequireRole(required entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if !entity.UserRole(role).Satisfies(required) {
				logger.Warn("Role check failed",
					zap.String("user_id", userID.String()),
					zap.String("role", role),
					zap.String("required", string(required)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You are not an admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuthenticate attaches the caller when a valid bearer token is present and
// otherwise lets the request through anonymously.
func OptionalAuthenticate(tokens credential.TokenService, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := tokens.VerifyAccessToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Warn("Optional auth lookup failed", zap.Error(err), zap.String("user_id", userID.String()))
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

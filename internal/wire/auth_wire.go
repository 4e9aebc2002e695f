package wire

import (
	"shop-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth mounts account routes on the /api/user subrouter.
func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	userHandler *adaptor.UserHandler,
	g guards,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/register", authHandler.Register)
	r.With(g.limit).Post("/login", authHandler.Login)
	r.With(g.limit).Post("/admin-login", authHandler.AdminLogin)
	r.With(g.limit).Post("/forgot-password-token", authHandler.ForgotPassword)
	r.Put("/reset-password/{token}", authHandler.ResetPassword)
	r.Get("/refresh-token", authHandler.RefreshToken)
	r.Get("/logout", authHandler.Logout)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Put("/edit-user", userHandler.UpdateUser)
		r.Put("/save-address", userHandler.SaveAddress)
		r.Put("/password", authHandler.UpdatePassword)
		r.Get("/wishlist", userHandler.GetWishlist)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/all-users", userHandler.GetAllUsers)
		r.Put("/block-user/{id}", userHandler.BlockUser)
		r.Put("/unblock-user/{id}", userHandler.UnblockUser)
		r.Get("/{id}", userHandler.GetUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}

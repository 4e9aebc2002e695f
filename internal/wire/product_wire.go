package wire

import (
	"shop-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler, g guards) {
	r.Route("/api/product", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", productHandler.GetProducts)
		r.Get("/{id}", productHandler.GetProduct)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)

			r.Post("/wishlist", productHandler.AddToWishlist)
			r.Post("/rating", productHandler.Rating)
		})

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Use(g.admin)

			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})
	})
}

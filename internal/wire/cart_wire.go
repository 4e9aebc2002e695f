package wire

import (
	"shop-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCart mounts cart and order routes on the /api/user subrouter.
func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, orderHandler *adaptor.OrderHandler, g guards) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart", cartHandler.SetCart)
		r.Delete("/cart", cartHandler.EmptyCart)
		r.Delete("/empty-cart", cartHandler.EmptyCart)
		r.Post("/cart/applycoupon", cartHandler.ApplyCoupon)
		r.Post("/cart/cash-order", orderHandler.CreateCashOrder)
		r.Get("/get-orders", orderHandler.GetOrders)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/getallorders", orderHandler.GetAllOrders)
		r.Put("/order/update-order/{id}", orderHandler.UpdateOrderStatus)
	})
}

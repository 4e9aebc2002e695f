package wire

import (
	"net/http"

	"shop-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// crud is the route set shared by the admin-managed catalog resources.
type crud interface {
	Create(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	List(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func wireCatalog(r chi.Router, handler *adaptor.Handler, g guards) {
	wireCRUD(r, "/api/category", handler.Category, g)
	wireCRUD(r, "/api/brand", handler.Brand, g)
	wireCRUD(r, "/api/coupon", handler.Coupon, g, g.auth, g.admin)
}

// wireCRUD mounts public reads (unless read guards are given) and admin writes.
func wireCRUD(r chi.Router, prefix string, h crud, g guards, read ...func(http.Handler) http.Handler) {
	r.Route(prefix, func(r chi.Router) {
		// ==================== READ ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(read...)

			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
		})

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Use(g.admin)

			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

package wire

import (
	"shop-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBlog(r chi.Router, blogHandler *adaptor.BlogHandler, categoryHandler *adaptor.TitleHandler, g guards) {
	r.Route("/api/blog", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// a token, when sent, marks which reactions are the caller's
		r.Group(func(r chi.Router) {
			r.Use(g.optional)

			r.Get("/", blogHandler.GetBlogs)
			r.Get("/{id}", blogHandler.GetBlog)
		})

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)

			r.Put("/likes", blogHandler.LikeBlog)
			r.Put("/dislikes", blogHandler.DislikeBlog)
		})

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Use(g.admin)

			r.Post("/", blogHandler.CreateBlog)
			r.Put("/{id}", blogHandler.UpdateBlog)
			r.Delete("/{id}", blogHandler.DeleteBlog)
		})
	})

	wireCRUD(r, "/api/blogcategory", categoryHandler, g)
}

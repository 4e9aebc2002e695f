package adaptor

import (
	"context"
	"net/http"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BlogHandler struct {
	responder
	service usecase.BlogService
}

func NewBlogHandler(service usecase.BlogService, config *utils.Config, log *zap.Logger) *BlogHandler {
	return &BlogHandler{
		responder: newResponder("blog", config, log),
		service:   service,
	}
}

// viewer is the caller's id when a token was presented, empty for anonymous reads.
func viewer(r *http.Request) string {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return id.String()
	}
	return ""
}

// CreateBlog handles POST /api/blog
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBlogRequest
	if !h.decode(w, r, &req) {
		return
	}

	blog, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create blog")
		return
	}

	utils.ResponseCreated(w, "Blog created", blog)
}

// GetBlog handles GET /api/blog/{id} and counts a view
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), viewer(r))
	if err != nil {
		h.handleServiceError(w, err, "get blog")
		return
	}

	utils.ResponseSuccess(w, "Blog retrieved", blog)
}

// GetBlogs handles GET /api/blog
func (h *BlogHandler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.List(r.Context(), viewer(r))
	if err != nil {
		h.handleServiceError(w, err, "get blogs")
		return
	}

	utils.ResponseSuccess(w, "Blogs retrieved", blogs)
}

// UpdateBlog handles PUT /api/blog/{id}
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBlogRequest
	if !h.decode(w, r, &req) {
		return
	}

	blog, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update blog")
		return
	}

	utils.ResponseSuccess(w, "Blog updated", blog)
}

// DeleteBlog handles DELETE /api/blog/{id}
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete blog")
		return
	}

	utils.ResponseSuccess(w, "Blog deleted", nil)
}

// LikeBlog handles PUT /api/blog/likes
func (h *BlogHandler) LikeBlog(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Like, "like blog")
}

// DislikeBlog handles PUT /api/blog/dislikes
func (h *BlogHandler) DislikeBlog(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Dislike, "dislike blog")
}

func (h *BlogHandler) react(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID string, req *request.BlogReactionRequest) (*response.BlogResponse, error),
	operation string,
) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.BlogReactionRequest
	if !h.decode(w, r, &req) {
		return
	}

	blog, err := apply(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "Reaction saved", blog)
}

package adaptor

import (
	"net/http"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	responder
	service usecase.ProductService
}

func NewProductHandler(service usecase.ProductService, config *utils.Config, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		responder: newResponder("product", config, log),
		service:   service,
	}
}

// CreateProduct handles POST /api/product
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created", product)
}

// GetProduct handles GET /api/product/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved", product)
}

// GetProducts handles GET /api/product?price[gte]=10&sort=-price&fields=title,price&page=1
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q, ok := h.listQuery(w, r)
	if !ok {
		return
	}

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, err, "get products")
		return
	}

	respondPage(h.responder, w, "Products retrieved", page, q.Fields)
}

// UpdateProduct handles PUT /api/product/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated", product)
}

// DeleteProduct handles DELETE /api/product/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}

// Rating handles POST /api/product/rating
func (h *ProductHandler) Rating(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.RatingRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.service.Rate(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "rate product")
		return
	}

	utils.ResponseSuccess(w, "Rating saved", product)
}

// AddToWishlist handles POST /api/product/wishlist
func (h *ProductHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.WishlistRequest
	if !h.decode(w, r, &req) {
		return
	}

	wishlist, err := h.service.ToggleWishlist(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "toggle wishlist")
		return
	}

	utils.ResponseSuccess(w, "Wishlist updated", wishlist)
}

package adaptor

import (
	"net/http"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	responder
	service usecase.CartService
}

func NewCartHandler(service usecase.CartService, config *utils.Config, log *zap.Logger) *CartHandler {
	return &CartHandler{
		responder: newResponder("cart", config, log),
		service:   service,
	}
}

// SetCart handles POST /api/user/cart
func (h *CartHandler) SetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.SetCartRequest
	if !h.decode(w, r, &req) {
		return
	}

	cart, err := h.service.SetCart(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "set cart")
		return
	}

	utils.ResponseSuccess(w, "Cart saved", cart)
}

// GetCart handles GET /api/user/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved", cart)
}

// EmptyCart handles DELETE /api/user/cart and DELETE /api/user/empty-cart
func (h *CartHandler) EmptyCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.EmptyCart(r.Context(), userID); err != nil {
		h.handleServiceError(w, err, "empty cart")
		return
	}

	utils.ResponseSuccess(w, "Cart emptied", nil)
}

// ApplyCoupon handles POST /api/user/cart/applycoupon
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.ApplyCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	cart, err := h.service.ApplyCoupon(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "apply coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon applied", cart)
}

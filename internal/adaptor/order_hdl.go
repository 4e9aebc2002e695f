package adaptor

import (
	"net/http"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	responder
	service usecase.OrderService
}

func NewOrderHandler(service usecase.OrderService, config *utils.Config, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		responder: newResponder("order", config, log),
		service:   service,
	}
}

// CreateCashOrder handles POST /api/user/cart/cash-order
func (h *OrderHandler) CreateCashOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.CashOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.service.CreateCashOrder(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create cash order")
		return
	}

	utils.ResponseCreated(w, "Order placed", order)
}

// GetOrders handles GET /api/user/get-orders
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	orders, err := h.service.GetOrders(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", orders)
}

// GetAllOrders handles GET /api/user/getallorders
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get all orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", orders)
}

// UpdateOrderStatus handles PUT /api/user/order/update-order/{id}
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateOrderStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", order)
}

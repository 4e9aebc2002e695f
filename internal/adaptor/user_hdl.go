package adaptor

import (
	"net/http"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	responder
	service usecase.UserService
}

func NewUserHandler(service usecase.UserService, config *utils.Config, log *zap.Logger) *UserHandler {
	return &UserHandler{
		responder: newResponder("user", config, log),
		service:   service,
	}
}

// GetAllUsers handles GET /api/user/all-users
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	q, ok := h.listQuery(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetAllUsers(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, err, "get all users")
		return
	}

	respondPage(h.responder, w, "Users retrieved", page, q.Fields)
}

// GetUser handles GET /api/user/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved", user)
}

// DeleteUser handles DELETE /api/user/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}

// UpdateUser handles PUT /api/user/edit-user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated", user)
}

// SaveAddress handles PUT /api/user/save-address
func (h *UserHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req request.SaveAddressRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.SaveAddress(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "save address")
		return
	}

	utils.ResponseSuccess(w, "Address saved", user)
}

// BlockUser handles PUT /api/user/block-user/{id}
func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.BlockUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "block user")
		return
	}

	utils.ResponseSuccess(w, "User blocked", nil)
}

// UnblockUser handles PUT /api/user/unblock-user/{id}
func (h *UserHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.UnblockUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "unblock user")
		return
	}

	utils.ResponseSuccess(w, "User unblocked", nil)
}

// GetWishlist handles GET /api/user/wishlist
func (h *UserHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	wishlist, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get wishlist")
		return
	}

	utils.ResponseSuccess(w, "Wishlist retrieved", wishlist)
}

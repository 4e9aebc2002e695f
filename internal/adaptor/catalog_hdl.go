package adaptor

import (
	"net/http"
	"strings"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TitleHandler serves the title-only resources: categories, brands and blog categories.
type TitleHandler struct {
	responder
	service usecase.TitleService
	noun    string
	label   string
}

func NewTitleHandler(service usecase.TitleService, noun string, config *utils.Config, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		responder: newResponder(strings.ReplaceAll(noun, " ", "_"), config, log),
		service:   service,
		noun:      noun,
		label:     strings.ToUpper(noun[:1]) + noun[1:],
	}
}

func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create "+h.noun)
		return
	}

	utils.ResponseCreated(w, h.label+" created", item)
}

func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get "+h.noun)
		return
	}

	utils.ResponseSuccess(w, h.label+" retrieved", item)
}

func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list "+h.noun)
		return
	}

	utils.ResponseSuccess(w, h.label+" list retrieved", items)
}

func (h *TitleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if !h.decode(w, r, &req) {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update "+h.noun)
		return
	}

	utils.ResponseSuccess(w, h.label+" updated", item)
}

func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete "+h.noun)
		return
	}

	utils.ResponseSuccess(w, h.label+" deleted", nil)
}

type CouponHandler struct {
	responder
	service usecase.CouponService
}

func NewCouponHandler(service usecase.CouponService, config *utils.Config, log *zap.Logger) *CouponHandler {
	return &CouponHandler{
		responder: newResponder("coupon", config, log),
		service:   service,
	}
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create coupon")
		return
	}

	utils.ResponseCreated(w, "Coupon created", coupon)
}

func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon retrieved", coupon)
}

func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list coupons")
		return
	}

	utils.ResponseSuccess(w, "Coupons retrieved", coupons)
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	coupon, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon updated", coupon)
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete coupon")
		return
	}

	utils.ResponseSuccess(w, "Coupon deleted", nil)
}

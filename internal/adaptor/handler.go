package adaptor

import (
	"encoding/json"
	"net/http"

	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Product      *ProductHandler
	Cart         *CartHandler
	Order        *OrderHandler
	Category     *TitleHandler
	Brand        *TitleHandler
	BlogCategory *TitleHandler
	Coupon       *CouponHandler
	Blog         *BlogHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, config, log),
		User:         NewUserHandler(service.User, config, log),
		Product:      NewProductHandler(service.Product, config, log),
		Cart:         NewCartHandler(service.Cart, config, log),
		Order:        NewOrderHandler(service.Order, config, log),
		Category:     NewTitleHandler(service.Category, "category", config, log),
		Brand:        NewTitleHandler(service.Brand, "brand", config, log),
		BlogCategory: NewTitleHandler(service.BlogCategory, "blog category", config, log),
		Coupon:       NewCouponHandler(service.Coupon, config, log),
		Blog:         NewBlogHandler(service.Blog, config, log),
	}
}

// responder holds what every handler needs to turn service results into envelopes.
type responder struct {
	log   *zap.Logger
	debug bool
}

func newResponder(name string, config *utils.Config, log *zap.Logger) responder {
	return responder{
		log:   log.With(zap.String("handler", name)),
		debug: config.App.Debug,
	}
}

// decode reads a JSON body into dst and validates it, answering 400 itself on failure.
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// currentUser returns the authenticated caller's id as set by middleware.Authenticate.
func (h responder) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", false
	}
	return userID.String(), true
}

// handleServiceError answers with the status carried by the AppError, 500 otherwise.
func (h responder) handleServiceError(w http.ResponseWriter, err error, operation string) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.HTTPCode() >= http.StatusInternalServerError {
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))

		if h.debug {
			utils.ResponseWithStack(w, http.StatusInternalServerError, "Internal server error", err.Error(), apperror.Stack(err))
			return
		}
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	h.log.Warn(operation+" rejected",
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("code", appErr.ErrorCode()))

	var details any
	if d := appErr.Details(); d != "" {
		details = d
	}
	utils.ResponseJSON(w, appErr.HTTPCode(), false, appErr.Message(), nil, details)
}

// listQuery parses the filter, sort, projection and page parameters of a list route.
func (h responder) listQuery(w http.ResponseWriter, r *http.Request) (request.ListQuery, bool) {
	q, err := request.ParseListQuery(r.URL.Query())
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid query", err.Error())
		return q, false
	}
	return q, true
}

// respondPage writes a page, projected to the requested fields when there are any.
func respondPage[T any](h responder, w http.ResponseWriter, message string, page *response.PaginatedResponse[T], fields []string) {
	if len(fields) == 0 {
		utils.ResponseSuccess(w, message, page)
		return
	}

	projected, err := response.ProjectPage(page, fields)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid fields", err.Error())
		return
	}
	utils.ResponseSuccess(w, message, projected)
}

// Package apperror holds the error taxonomy shared by services, middleware and handlers.
package apperror

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// AppError is an error that knows how it should be reported to a client.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

// BaseError implements AppError.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}
	return e.message
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// Is matches on error code, so a copy made by WithDetails still matches its template.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.errorCode == t.errorCode
}

// WithDetails returns a copy carrying extra detail.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy with a different client-facing message.
func (e *BaseError) WithMessage(format string, args ...any) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   fmt.Sprintf(format, args...),
		details:   e.details,
	}
}

// Wrap records cause as the details of a copy of e and keeps cause's stack.
func (e *BaseError) Wrap(cause error) error {
	if cause == nil {
		return e
	}
	return errors.WithStack(e.WithDetails(cause.Error()))
}

var (
	ErrValidation = NewBaseError(http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", "")
	ErrInvalidID  = NewBaseError(http.StatusBadRequest, "INVALID_ID", "invalid id", "")

	ErrUnauthenticated    = NewBaseError(http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required", "")
	ErrInvalidToken       = NewBaseError(http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token", "")
	ErrInvalidCredentials = NewBaseError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials", "")
	ErrNoRefreshToken     = NewBaseError(http.StatusUnauthorized, "NO_REFRESH_TOKEN", "no refresh token in cookies", "")

	ErrForbidden   = NewBaseError(http.StatusForbidden, "FORBIDDEN", "not authorized", "")
	ErrUserBlocked = NewBaseError(http.StatusForbidden, "USER_BLOCKED", "user is blocked", "")

	ErrNotFound        = NewBaseError(http.StatusNotFound, "NOT_FOUND", "resource not found", "")
	ErrUserNotFound    = NewBaseError(http.StatusNotFound, "USER_NOT_FOUND", "user not found", "")
	ErrProductNotFound = NewBaseError(http.StatusNotFound, "PRODUCT_NOT_FOUND", "product not found", "")
	ErrOrderNotFound   = NewBaseError(http.StatusNotFound, "ORDER_NOT_FOUND", "order not found", "")
	ErrPageOutOfRange  = NewBaseError(http.StatusNotFound, "PAGE_OUT_OF_RANGE", "this page does not exist", "")

	ErrConflict        = NewBaseError(http.StatusConflict, "CONFLICT", "resource already exists", "")
	ErrEmailTaken      = NewBaseError(http.StatusConflict, "EMAIL_TAKEN", "email already registered", "")
	ErrMobileTaken     = NewBaseError(http.StatusConflict, "MOBILE_TAKEN", "mobile already registered", "")
	ErrInvalidCoupon   = NewBaseError(http.StatusConflict, "INVALID_COUPON", "invalid coupon", "")
	ErrNoActiveCart    = NewBaseError(http.StatusConflict, "NO_ACTIVE_CART", "no active cart", "")
	ErrInvalidReset    = NewBaseError(http.StatusBadRequest, "INVALID_RESET_TOKEN", "token expired, please try again later", "")
	ErrCheckoutPayment = NewBaseError(http.StatusBadRequest, "CHECKOUT_NOT_SUPPORTED", "create cash order failed", "")

	ErrUpstream = NewBaseError(http.StatusInternalServerError, "UPSTREAM_FAILURE", "internal server error", "")
)

// Validation builds a ValidationError with the given detail.
func Validation(details string) *BaseError {
	return ErrValidation.WithDetails(details)
}

// Upstream wraps a persistence or infrastructure failure.
func Upstream(cause error) error {
	return ErrUpstream.Wrap(cause)
}

// As extracts the AppError in err's chain.
func As(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err matches target by error code.
func Is(err error, target *BaseError) bool {
	return errors.Is(err, target)
}

// HTTPStatus maps any error to a status, 500 when err carries no AppError.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPCode()
	}
	return http.StatusInternalServerError
}

// Stack renders the stack recorded by pkg/errors, empty when none was captured.
func Stack(err error) string {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%+v", st.StackTrace())
	}
	return ""
}

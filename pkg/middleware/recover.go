package middleware

import (
	"fmt"
	"net/http"

	"shop-backend/pkg/utils"

	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 envelope. http.ErrAbortHandler is re-raised
// so net/http can drop the connection as it expects.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("Recovered from panic",
					zap.String("panic", fmt.Sprint(rec)),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Stack("stack"),
				)
				utils.ResponseInternalError(w, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}

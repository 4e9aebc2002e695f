package wire

import (
	"net/http"

	"shop-backend/internal/adaptor"
	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/usecase"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/mailer"
	"shop-backend/pkg/middleware"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// guards are the route-level middlewares shared by the wire functions.
type guards struct {
	auth     func(http.Handler) http.Handler
	optional func(http.Handler) http.Handler
	admin    func(http.Handler) http.Handler
	limit    func(http.Handler) http.Handler
}

// Wiring builds services, handlers and the router.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	tokens credential.TokenService,
	mail mailer.Mailer,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, tokens, mail, logger)
	handler := adaptor.NewHandler(service, config, logger)

	g := guards{
		auth:     middleware.Authenticate(tokens, repo.User, logger),
		optional: middleware.OptionalAuthenticate(tokens, repo.User, logger),
		admin:    middleware.RequireRole(entity.RoleAdmin, logger),
		limit:    middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst, logger).Handler,
	}

	return &App{
		Router: setupRouter(handler, g, middleware.NewMetrics(metricsNamespace(config.App.Name)), config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	g guards,
	metrics *middleware.Metrics,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Instrument)
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not Found : "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method "+r.Method+" not allowed on "+r.URL.Path)
	})

	// Apply routes
	r.Route("/api/user", func(r chi.Router) {
		wireAuth(r, handler.Auth, handler.User, g)
		wireCart(r, handler.Cart, handler.Order, g)
	})
	wireProduct(r, handler.Product, g)
	wireCatalog(r, handler, g)
	wireBlog(r, handler.Blog, handler.BlogCategory, g)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"service": config.App.Name})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// metricsNamespace turns an app name like "shop-backend" into a valid metric prefix.
func metricsNamespace(name string) string {
	out := []byte(name)
	for i, c := range out {
		alnum := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
		if !alnum {
			out[i] = '_'
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		return "shop"
	}
	return string(out)
}

package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository/repotest"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/mailer"
	"shop-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	router http.Handler
	store  *repotest.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	config := &utils.Config{
		App: utils.AppConfig{Name: "shop-backend", BaseURL: "http://shop.test", AllowedOrigins: "*"},
		JWT: utils.JWTConfig{
			AccessSecret:  "access",
			RefreshSecret: "refresh",
			AccessTTL:     time.Hour,
			RefreshTTL:    72 * time.Hour,
		},
		Security:  utils.SecurityConfig{BcryptCost: bcrypt.MinCost, ResetTTL: 30 * time.Minute},
		RateLimit: utils.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
	}
	tokens, err := credential.NewJWTService(credential.TokenConfig{
		AccessSecret:  config.JWT.AccessSecret,
		RefreshSecret: config.JWT.RefreshSecret,
		AccessTTL:     config.JWT.AccessTTL,
		RefreshTTL:    config.JWT.RefreshTTL,
	})
	require.NoError(t, err)

	store := repotest.NewStore()
	log := zap.NewNop()
	app := Wiring(store.Repository(), config, tokens, mailer.NewLogMailer(log), log)
	return &testApp{router: app.Router, store: store}
}

func (a *testApp) do(t *testing.T, method, path string, body any, header http.Header, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

// login registers an account, optionally promotes it, and returns its access token and refresh cookie.
func (a *testApp) login(t *testing.T, email, mobile string, role entity.UserRole) (string, *http.Cookie) {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/user/register", map[string]string{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     email,
		"mobile":    mobile,
		"password":  "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	if role != entity.RoleUser {
		user, err := a.store.Users.FindByEmail(context.Background(), email)
		require.NoError(t, err)
		user.Role = role
		require.NoError(t, a.store.Users.Update(context.Background(), user))
	}

	rec = a.do(t, http.MethodPost, "/api/user/login", map[string]string{"email": email, "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := envelope(t, rec)["data"].(map[string]any)
	var refresh *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refreshToken" {
			refresh = c
		}
	}
	require.NotNil(t, refresh, "refresh cookie not set")
	return data["token"].(string), refresh
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := envelope(t, rec)
	assert.Equal(t, false, body["status"])
	assert.Contains(t, body["message"], "/api/nope")

	rec = app.do(t, http.MethodPatch, "/health", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, false, envelope(t, rec)["status"])
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope(t, rec)["status"])

	rec = app.do(t, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shop_backend_http_requests_total")
}

func TestRouter_AuthFlow(t *testing.T) {
	app := newTestApp(t)
	token, refresh := app.login(t, "ada@example.com", "5550001", entity.RoleUser)

	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, 72*3600, refresh.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, refresh.SameSite)

	rec := app.do(t, http.MethodGet, "/api/user/wishlist", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/user/wishlist", nil, bearer(token))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the refresh token is not an access token
	rec = app.do(t, http.MethodGet, "/api/user/wishlist", nil, bearer(refresh.Value))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/user/refresh-token", nil, nil, refresh)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec)["data"].(map[string]any)
	assert.NotEmpty(t, data["accessToken"])

	rec = app.do(t, http.MethodGet, "/api/user/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/user/logout", nil, nil, refresh)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/user/logout", nil, nil, refresh)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	app := newTestApp(t)
	userToken, _ := app.login(t, "ada@example.com", "5550001", entity.RoleUser)
	adminToken, _ := app.login(t, "root@example.com", "5550002", entity.RoleAdmin)

	rec := app.do(t, http.MethodGet, "/api/user/all-users", nil, bearer(userToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/user/all-users", nil, bearer(adminToken))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/user/admin-login", map[string]string{"email": "ada@example.com", "password": "secret123"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	product := map[string]any{
		"title":       "Phone Case",
		"description": "case",
		"price":       10,
		"category":    "Phones",
		"brand":       "Acme",
		"quantity":    5,
	}
	rec = app.do(t, http.MethodPost, "/api/product", product, bearer(userToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/product", product, bearer(adminToken))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/product?fields=title,price", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := envelope(t, rec)["data"].(map[string]any)
	items := page["data"].([]any)
	require.Len(t, items, 1)
	assert.ElementsMatch(t, []string{"id", "title", "price"}, keys(items[0].(map[string]any)))

	rec = app.do(t, http.MethodGet, "/api/product?page=9", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/coupon", nil, bearer(userToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ValidationEnvelope(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/user/register", map[string]string{"email": "bad"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := envelope(t, rec)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "shop_backend", metricsNamespace("shop-backend"))
	assert.Equal(t, "shop", metricsNamespace(""))
	assert.Equal(t, "shop", metricsNamespace("9lives"))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

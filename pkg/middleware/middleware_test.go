package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository/repotest"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTokens(t *testing.T) credential.TokenService {
	t.Helper()
	tokens, err := credential.NewJWTService(credential.TokenConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)
	return tokens
}

func seedUser(t *testing.T, users *repotest.Users, role entity.UserRole) *entity.User {
	t.Helper()
	user := &entity.User{
		Base:   entity.NewBase(time.Now()),
		Email:  uuid.NewString() + "@example.com",
		Mobile: uuid.NewString(),
		Role:   role,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	utils.ResponseSuccess(w, "ok", id.String())
})

func TestAuthenticate(t *testing.T) {
	tokens := newTokens(t)
	users := repotest.NewUsers()
	user := seedUser(t, users, entity.RoleUser)
	handler := Authenticate(tokens, users, zap.NewNop())(okHandler)

	access, err := tokens.IssueAccessToken(user.ID)
	require.NoError(t, err)
	refresh, err := tokens.IssueRefreshToken(user.ID)
	require.NoError(t, err)
	ghost, err := tokens.IssueAccessToken(uuid.New())
	require.NoError(t, err)
	blocked := seedUser(t, users, entity.RoleUser)
	require.NoError(t, users.SetBlocked(context.Background(), blocked.ID, true))
	blockedAccess, err := tokens.IssueAccessToken(blocked.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token as access", "Bearer " + refresh, http.StatusUnauthorized},
		{"unknown subject", "Bearer " + ghost, http.StatusUnauthorized},
		{"blocked", "Bearer " + blockedAccess, http.StatusForbidden},
		{"valid", "Bearer " + access, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/wishlist", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.want == http.StatusOK, body.Status)
			if tt.want == http.StatusOK {
				assert.Equal(t, user.ID.String(), body.Data)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := newTokens(t)
	users := repotest.NewUsers()
	log := zap.NewNop()
	handler := Authenticate(tokens, users, log)(RequireRole(entity.RoleAdmin, log)(okHandler))

	for role, want := range map[entity.UserRole]int{
		entity.RoleUser:       http.StatusForbidden,
		entity.RoleAdmin:      http.StatusOK,
		entity.RoleSuperAdmin: http.StatusOK,
	} {
		t.Run(string(role), func(t *testing.T) {
			user := seedUser(t, users, role)
			access, err := tokens.IssueAccessToken(user.ID)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/api/user/all-users", nil)
			req.Header.Set("Authorization", "Bearer "+access)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, want, rec.Code)
		})
	}

	t.Run("without authenticate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(entity.RoleAdmin, log)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.False(t, decode(t, rec).Status)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, zap.NewNop())
	handler := rl.Handler(okHandler)

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1002"))
	// buckets are per ip
	assert.Equal(t, http.StatusOK, hit("10.0.0.2:1000"))
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1, zap.NewNop())
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.limiter("a")
	now = now.Add(time.Hour)
	rl.limiter("b")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "a")
	assert.Contains(t, rl.visitors, "b")
}

func TestCORS(t *testing.T) {
	handler := CORS("https://shop.example, https://admin.example")(okHandler)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/product", nil)
		req.Header.Set("Origin", "https://shop.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("shop_test")
	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/product/{id}", okHandler)
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/product/123", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `shop_test_http_requests_total{method="GET",route="/api/product/{id}",status="200"} 1`), body)
}

func TestLogger_CapturesStatus(t *testing.T) {
	handler := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "nope")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

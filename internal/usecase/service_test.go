package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository/repotest"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/credential"
	"shop-backend/pkg/mailer"
	"shop-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type outbox struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (o *outbox) Send(_ context.Context, msg mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

func (o *outbox) last(t *testing.T) mailer.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no mail sent")
	return o.sent[len(o.sent)-1]
}

type fixture struct {
	svc    *Service
	store  *repotest.Store
	mail   *outbox
	tokens credential.TokenService
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Name: "shop-test", BaseURL: "http://shop.test"},
		JWT: utils.JWTConfig{
			AccessSecret:  "access-secret",
			RefreshSecret: "refresh-secret",
			AccessTTL:     time.Hour,
			RefreshTTL:    72 * time.Hour,
		},
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost, ResetTTL: 30 * time.Minute},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	config := testConfig()
	tokens, err := credential.NewJWTService(credential.TokenConfig{
		AccessSecret:  config.JWT.AccessSecret,
		RefreshSecret: config.JWT.RefreshSecret,
		AccessTTL:     config.JWT.AccessTTL,
		RefreshTTL:    config.JWT.RefreshTTL,
	})
	require.NoError(t, err)

	store := repotest.NewStore()
	mail := &outbox{}
	return &fixture{
		svc:    NewService(store.Repository(), config, tokens, mail, zap.NewNop()),
		store:  store,
		mail:   mail,
		tokens: tokens,
	}
}

// setClock pins the auth service's clock.
func (f *fixture) setClock(now func() time.Time) {
	f.svc.Auth.(*authService).now = now
}

func (f *fixture) register(t *testing.T, email, mobile string) uuid.UUID {
	t.Helper()
	user, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     email,
		Mobile:    mobile,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return uuid.MustParse(user.ID)
}

func (f *fixture) setRole(t *testing.T, id uuid.UUID, role entity.UserRole) {
	t.Helper()
	ctx := context.Background()
	user, err := f.store.Users.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user)
	user.Role = role
	require.NoError(t, f.store.Users.Update(ctx, user))
}

func (f *fixture) addProduct(t *testing.T, title string, price float64, quantity int) uuid.UUID {
	t.Helper()
	product, err := f.svc.Product.Create(context.Background(), &request.CreateProductRequest{
		Title:       title,
		Description: "test product",
		Price:       price,
		Category:    "Phones",
		Brand:       "Acme",
		Quantity:    quantity,
	})
	require.NoError(t, err)
	return uuid.MustParse(product.ID)
}

// resetTokenFrom pulls the plain token out of a reset link in msg.
func resetTokenFrom(t *testing.T, msg mailer.Message) string {
	t.Helper()
	const marker = "/api/user/reset-password/"
	i := strings.Index(msg.Text, marker)
	require.GreaterOrEqual(t, i, 0, "no reset link in %q", msg.Text)
	return msg.Text[i+len(marker):]
}

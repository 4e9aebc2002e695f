package usecase

import (
	"context"
	"testing"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_DuplicateEmailIgnoresCase(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com", "5550001")

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Firstname: "Other",
		Lastname:  "Person",
		Email:     "ADA@Example.com",
		Mobile:    "5550002",
		Password:  "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrEmailTaken))
	assert.Equal(t, 409, apperror.HTTPStatus(err))
}

func TestRegister_DuplicateMobile(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com", "5550001")

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Firstname: "Other",
		Lastname:  "Person",
		Email:     "other@example.com",
		Mobile:    "5550001",
		Password:  "secret123",
	})
	assert.True(t, apperror.Is(err, apperror.ErrMobileTaken))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrValidation))
	assert.Equal(t, 400, apperror.HTTPStatus(err))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "ada@example.com", "5550001")
	ctx := context.Background()

	t.Run("any email casing", func(t *testing.T) {
		resp, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "Ada@EXAMPLE.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)

		subject, err := f.tokens.VerifyAccessToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, id, subject)

		user, err := f.store.Users.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, user.RefreshToken)
		assert.Equal(t, resp.RefreshToken, *user.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "nope"})
		assert.True(t, apperror.Is(err, apperror.ErrInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.True(t, apperror.Is(err, apperror.ErrInvalidCredentials))
	})

	t.Run("blocked", func(t *testing.T) {
		require.NoError(t, f.svc.User.BlockUser(ctx, id.String()))
		defer func() { require.NoError(t, f.svc.User.UnblockUser(ctx, id.String())) }()

		_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "secret123"})
		assert.True(t, apperror.Is(err, apperror.ErrUserBlocked))
	})
}

func TestAdminLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "user@example.com", "5550001")
	admin := f.register(t, "admin@example.com", "5550002")
	super := f.register(t, "root@example.com", "5550003")
	f.setRole(t, admin, entity.RoleAdmin)
	f.setRole(t, super, entity.RoleSuperAdmin)

	_, err := f.svc.Auth.AdminLogin(ctx, &request.LoginRequest{Email: "user@example.com", Password: "secret123"})
	assert.True(t, apperror.Is(err, apperror.ErrForbidden))

	resp, err := f.svc.Auth.AdminLogin(ctx, &request.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, admin.String(), resp.ID)

	resp, err = f.svc.Auth.AdminLogin(ctx, &request.LoginRequest{Email: "root@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, super.String(), resp.ID)
}

func TestRefreshAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "ada@example.com", "5550001")

	login, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := f.svc.Auth.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	subject, err := f.tokens.VerifyAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, subject)

	_, err = f.svc.Auth.Refresh(ctx, "")
	assert.True(t, apperror.Is(err, apperror.ErrNoRefreshToken))

	require.NoError(t, f.svc.Auth.Logout(ctx, login.RefreshToken))

	_, err = f.svc.Auth.Refresh(ctx, login.RefreshToken)
	assert.True(t, apperror.Is(err, apperror.ErrInvalidToken))

	// a second logout with the forgotten token still succeeds
	assert.NoError(t, f.svc.Auth.Logout(ctx, login.RefreshToken))
	assert.True(t, apperror.Is(f.svc.Auth.Logout(ctx, ""), apperror.ErrNoRefreshToken))
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	forgot := func(t *testing.T, f *fixture) string {
		t.Helper()
		f.setClock(func() time.Time { return issuedAt })
		require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "ada@example.com"}))

		msg := f.mail.last(t)
		assert.Equal(t, "ada@example.com", msg.To)
		assert.Contains(t, msg.Text, "30 minutes")
		return resetTokenFrom(t, msg)
	}

	t.Run("within ttl", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "ada@example.com", "5550001")
		token := forgot(t, f)

		f.setClock(func() time.Time { return issuedAt.Add(29 * time.Minute) })
		require.NoError(t, f.svc.Auth.ResetPassword(ctx, token, &request.ResetPasswordRequest{Password: "newsecret"}))

		_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "newsecret"})
		assert.NoError(t, err)

		// consumed
		err = f.svc.Auth.ResetPassword(ctx, token, &request.ResetPasswordRequest{Password: "again123"})
		assert.True(t, apperror.Is(err, apperror.ErrInvalidReset))
	})

	t.Run("expired", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "ada@example.com", "5550001")
		token := forgot(t, f)

		f.setClock(func() time.Time { return issuedAt.Add(31 * time.Minute) })
		err := f.svc.Auth.ResetPassword(ctx, token, &request.ResetPasswordRequest{Password: "newsecret"})
		assert.True(t, apperror.Is(err, apperror.ErrInvalidReset))

		_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "secret123"})
		assert.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Auth.ForgotPassword(ctx, &request.ForgotPasswordRequest{Email: "nobody@example.com"})
		assert.True(t, apperror.Is(err, apperror.ErrUserNotFound))
	})
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "ada@example.com", "5550001")

	resp, err := f.svc.Auth.UpdatePassword(ctx, id.String(), &request.UpdatePasswordRequest{Password: "changed1"})
	require.NoError(t, err)
	assert.Equal(t, id.String(), resp.ID)

	user, err := f.store.Users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, user.PasswordChangedAt)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "changed1"})
	assert.NoError(t, err)
}

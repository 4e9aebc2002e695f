package credential

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	for _, plain := range []string{"secret", "Str0ng!Pass", "ünïcødé", " "} {
		hash, err := hasher.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash)
		assert.True(t, hasher.Check(plain, hash), plain)
		assert.False(t, hasher.Check(plain+"x", hash), plain)
	}
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	a, err := hasher.Hash("same")
	require.NoError(t, err)
	b, err := hasher.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func testTokenService(t *testing.T, now func() time.Time) *jwtService {
	t.Helper()
	svc, err := newJWTService(TokenConfig{
		AccessSecret:  "test_access_secret_key_very_long_for_testing",
		RefreshSecret: "test_refresh_secret_key_very_long_for_testing",
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    72 * time.Hour,
	}, now)
	require.NoError(t, err)
	return svc
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := testTokenService(t, time.Now)
	userID := uuid.New()

	access, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)

	got, err := svc.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := testTokenService(t, time.Now)
	userID := uuid.New()

	refresh, err := svc.IssueRefreshToken(userID)
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)
	_, err = svc.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	svc := testTokenService(t, func() time.Time { return clock })

	refresh, err := svc.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	clock = issuedAt.Add(71 * time.Hour)
	_, err = svc.VerifyRefreshToken(refresh)
	assert.NoError(t, err)

	clock = issuedAt.Add(73 * time.Hour)
	_, err = svc.VerifyRefreshToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsTamperedAndGarbage(t *testing.T) {
	svc := testTokenService(t, time.Now)
	other := testTokenService(t, time.Now)
	other.accessSecret = []byte("another-secret")

	foreign, err := other.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccessToken("clearly-not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(TokenConfig{})
	assert.Error(t, err)
}

func TestIssueResetToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	token, err := IssueResetToken(now, 0)
	require.NoError(t, err)

	assert.Len(t, token.Plain, 64)
	assert.Equal(t, HashResetToken(token.Plain), token.Hash)
	assert.NotEqual(t, token.Plain, token.Hash)
	assert.Equal(t, now.Add(30*time.Minute), token.ExpiresAt)

	again, err := IssueResetToken(now, time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, token.Plain, again.Plain)
	assert.Equal(t, now.Add(time.Minute), again.ExpiresAt)
}

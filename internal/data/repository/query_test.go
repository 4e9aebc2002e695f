package repository

import (
	"net/url"
	"testing"

	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) request.ListQuery {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := request.ParseListQuery(values)
	require.NoError(t, err)
	return q
}

func TestListSQL_Products(t *testing.T) {
	q := mustParse(t, "price[gte]=10&price[lt]=99.5&brand=apple&sort=-price,title&page=2&limit=5")

	list, count, args, err := productSchema.listSQL("id", "products", q)
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM products WHERE brand = $1 AND price < $2 AND price >= $3 ORDER BY price DESC, title ASC LIMIT 5 OFFSET 5", list)
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE brand = $1 AND price < $2 AND price >= $3", count)
	assert.Equal(t, []any{"apple", 99.5, 10.0}, args)
}

func TestListSQL_DefaultSortNewestFirst(t *testing.T) {
	list, _, args, err := productSchema.listSQL("id", "products", mustParse(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM products WHERE TRUE ORDER BY created_at DESC LIMIT 10 OFFSET 0", list)
	assert.Empty(t, args)
}

func TestListSQL_Aliases(t *testing.T) {
	list, _, _, err := productSchema.listSQL("id", "products", mustParse(t, "sort=-createdAt,totalrating"))
	require.NoError(t, err)
	assert.Contains(t, list, "ORDER BY created_at DESC, total_rating ASC")
}

func TestListSQL_RejectsUnknownFieldsAndBadValues(t *testing.T) {
	for _, raw := range []string{"password=x", "sort=password", "price[gte]=cheap", "quantity=1.5"} {
		_, _, _, err := productSchema.listSQL("id", "products", mustParse(t, raw))
		require.Error(t, err, raw)
		assert.True(t, apperror.Is(err, apperror.ErrValidation), raw)
	}
}

func TestListSQL_Users(t *testing.T) {
	list, _, args, err := userSchema.listSQL("id", "users", mustParse(t, "role=admin&is_blocked=false"))
	require.NoError(t, err)

	assert.Contains(t, list, "WHERE is_blocked = $1 AND role = $2")
	assert.Equal(t, []any{false, "admin"}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, isUniqueViolation(dup))
	assert.Equal(t, "users_email_key", constraintName(dup))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(assert.AnError))
}

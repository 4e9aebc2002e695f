package usecase

import (
	"testing"

	"shop-backend/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotalAndDiscount(t *testing.T) {
	items := []entity.LineItem{
		{Price: 10, Count: 2},
		{Price: 5, Count: 3},
	}

	total := cartTotal(items)
	assert.Equal(t, 35.0, total)
	assert.Equal(t, 31.5, applyDiscount(total, 10))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, round2(0.1+0.2))
	assert.Equal(t, 19.99, lineTotal(19.99, 1))
	assert.Equal(t, 59.97, lineTotal(19.99, 3))
	assert.Equal(t, 8.33, applyDiscount(9.99, 16.6))
}

func TestApplyDiscount_Bounds(t *testing.T) {
	assert.Equal(t, 35.0, applyDiscount(35, 0))
	assert.Equal(t, 0.0, applyDiscount(35, 100))
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name  string
		stars []int
		want  int
	}{
		{"three ratings", []int{5, 3, 4}, 4},
		{"replaced rating", []int{1, 3, 4}, 3},
		{"half rounds up", []int{4, 5}, 5},
		{"single", []int{2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := averageRating(tt.stars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAverageRating_Empty(t *testing.T) {
	_, err := averageRating(nil)
	assert.ErrorIs(t, err, ErrNoRatings)
}

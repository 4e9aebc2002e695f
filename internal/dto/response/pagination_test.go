package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse[sample](nil, 2, 10, 21)

	assert.NotNil(t, resp.Data)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, int64(21), resp.Pagination.Total)
}

func TestProject(t *testing.T) {
	items := []sample{{ID: "1", Title: "phone", Price: 10}}

	got, err := Project(items, []string{"title"})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": "1", "title": "phone"}}, got)

	got, err = Project(items, []string{"-price"})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": "1", "title": "phone"}}, got)

	_, err = Project(items, []string{"title", "-price"})
	assert.Error(t, err)
}

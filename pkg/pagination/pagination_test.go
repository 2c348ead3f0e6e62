package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 2, PerPage: 500}
	p.Validate()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	result := Slice(items, &PaginationParams{Page: 2, PerPage: 10})
	require.Len(t, result.Items, 10)
	assert.Equal(t, 10, result.Items[0])
	assert.Equal(t, 19, result.Items[9])
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestSlice_PastTheEnd(t *testing.T) {
	items := []string{"a", "b"}

	result := Slice(items, &PaginationParams{Page: 5, PerPage: 10})
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.False(t, result.Pagination.HasNext)
}

func TestSlice_EmptyInput(t *testing.T) {
	result := Slice([]int{}, &PaginationParams{Page: 1, PerPage: 10})
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.Pagination.Total)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}

package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, DefaultPageSize, 25)
	require.Equal(t, 3, p.TotalPages)
	require.False(t, p.HasPrev())
	require.True(t, p.HasNext())
	require.Equal(t, 0, p.Offset())

	p = NewPagination(3, DefaultPageSize, 25)
	require.True(t, p.HasPrev())
	require.False(t, p.HasNext())
	require.Equal(t, 20, p.Offset())
}

func TestNewPaginationNoResults(t *testing.T) {
	p := NewPagination(1, DefaultPageSize, 0)
	require.Equal(t, 0, p.TotalPages)
	require.False(t, p.HasPrev())
	require.False(t, p.HasNext())
}

func TestNewPaginationExactMultiple(t *testing.T) {
	p := NewPagination(2, DefaultPageSize, 20)
	require.Equal(t, 2, p.TotalPages)
	require.False(t, p.HasNext())
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)
	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPagination(30, 1, 10)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPagination(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPagination(5, 1, 0)
	assert.Equal(t, 0, p.TotalPages)
}

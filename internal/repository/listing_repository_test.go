package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/domain"
)

func TestBuildSearchClausesDefault(t *testing.T) {
	clauses, args := buildSearchClauses(SearchFilter{})

	require.Equal(t, []string{"status=$1"}, clauses)
	require.Equal(t, []any{domain.ListingStatusApproved}, args)
}

func TestBuildSearchClausesNumbering(t *testing.T) {
	propertyType := 2
	stateID := 5
	minPrice := 10000.0
	maxPrice := 50000.0

	clauses, args := buildSearchClauses(SearchFilter{
		PropertyType: &propertyType,
		StateID:      &stateID,
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
	})

	assert.Equal(t, []string{
		"status=$1",
		"property_type=$2",
		"state_id=$3",
		"seller_price >= $4",
		"seller_price <= $5",
	}, clauses)
	assert.Equal(t, []any{domain.ListingStatusApproved, 2, 5, 10000.0, 50000.0}, args)
}

func TestBuildSearchClausesTitleQuery(t *testing.T) {
	query := "  Casa GRANDE  "
	clauses, args := buildSearchClauses(SearchFilter{Query: &query})

	require.Len(t, clauses, 2)
	assert.Equal(t, "LOWER(title) LIKE $2", clauses[1])
	assert.Equal(t, "%casa grande%", args[1])
}

func TestBuildSearchClausesBlankQueryIgnored(t *testing.T) {
	query := "   "
	clauses, _ := buildSearchClauses(SearchFilter{Query: &query})
	assert.Equal(t, []string{"status=$1"}, clauses)
}

func TestSortColumnWhitelist(t *testing.T) {
	assert.Equal(t, "seller_price", sortColumn("seller_price"))
	assert.Equal(t, "view_count", sortColumn("view_count"))

	// Anything off the whitelist falls back instead of reaching the query.
	assert.Equal(t, "created_at", sortColumn("id; DROP TABLE listings"))
	assert.Equal(t, "created_at", sortColumn(""))
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "ASC", sortDirection(true))
	assert.Equal(t, "DESC", sortDirection(false))
}

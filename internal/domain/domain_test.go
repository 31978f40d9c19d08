package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Sort Order Validation Tests
// ============================================================================

func TestValidSorts_ContainsAll(t *testing.T) {
	expected := []string{SortNewest, SortRatingDesc, SortPriceAsc, SortPriceDesc}
	assert.ElementsMatch(t, expected, ValidSorts())
}

func TestIsValidSort_ValidValues(t *testing.T) {
	for _, s := range ValidSorts() {
		assert.True(t, IsValidSort(s), "expected %q to be valid", s)
	}
}

func TestIsValidSort_Invalid(t *testing.T) {
	assert.False(t, IsValidSort("unknown"))
	assert.False(t, IsValidSort(""))
	assert.False(t, IsValidSort("NEWEST"))
}

// ============================================================================
// Cart Tests
// ============================================================================

func TestCart_TotalAmount(t *testing.T) {
	c := Cart{Items: []CartItem{
		{ProductID: "p1", Price: 1990, Quantity: 2},
		{ProductID: "p2", Price: 500, Quantity: 1},
	}}
	assert.Equal(t, int64(4480), c.TotalAmount())
}

func TestCart_FindItemIndex_MatchesVariant(t *testing.T) {
	c := Cart{Items: []CartItem{
		{ProductID: "p1", Color: "red", Size: "M"},
		{ProductID: "p1", Color: "blue", Size: "M"},
	}}
	assert.Equal(t, 1, c.FindItemIndex("p1", "blue", "M"))
	assert.Equal(t, -1, c.FindItemIndex("p1", "blue", "L"))
}

// ============================================================================
// Money Tests
// ============================================================================

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"45.00", 4500},
		{"45", 4500},
		{"0.99", 99},
		{"0", 0},
		{"199.5", 19950},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "", "-1.00", "1.005"} {
		_, err := ParsePrice(in)
		assert.Error(t, err, in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "45.00", FormatPrice(4500))
	assert.Equal(t, "0.99", FormatPrice(99))
	assert.Equal(t, "0.00", FormatPrice(0))
}

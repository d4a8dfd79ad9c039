package catalog

import (
	"strings"
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category successfully", func(t *testing.T) {
		c, err := NewCategory("Electronics", "Electronic devices and gadgets")

		require.NoError(t, err)
		assert.Equal(t, "Electronics", c.Title)
		assert.Equal(t, "Electronic devices and gadgets", c.Description)
		assert.True(t, c.IsNew())
	})

	t.Run("allows empty description", func(t *testing.T) {
		c, err := NewCategory("Books", "")

		require.NoError(t, err)
		assert.Empty(t, c.Description)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewCategory("   ", "desc")

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_TITLE", de.Code)
	})

	t.Run("fails with too long description", func(t *testing.T) {
		_, err := NewCategory("Books", strings.Repeat("a", MaxDescriptionLength+1))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 1000 characters")
	})
}

func TestNewShopItem(t *testing.T) {
	t.Run("creates item and deduplicates categories", func(t *testing.T) {
		item, err := NewShopItem("Laptop", "High-performance laptop", decimal.RequireFromString("1299.99"), []shared.ID{1, 2, 1, 0})

		require.NoError(t, err)
		assert.Equal(t, "Laptop", item.Title)
		assert.True(t, decimal.RequireFromString("1299.99").Equal(item.Price))
		assert.Equal(t, []shared.ID{1, 2}, item.CategoryIDs)
		assert.True(t, item.InCategory(2))
		assert.False(t, item.InCategory(3))
	})

	t.Run("rounds price to two decimals", func(t *testing.T) {
		item, err := NewShopItem("Pen", "", decimal.RequireFromString("1.005"), nil)

		require.NoError(t, err)
		assert.Equal(t, "1.01", item.Price.StringFixed(2))
		assert.Empty(t, item.CategoryIDs)
	})

	t.Run("accepts zero price", func(t *testing.T) {
		_, err := NewShopItem("Sticker", "Free sticker", decimal.Zero, nil)
		assert.NoError(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewShopItem("Laptop", "", decimal.NewFromInt(-1), nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewShopItem("", "", decimal.NewFromInt(1), nil)
		assert.Error(t, err)
	})
}

func TestShopItem_Update(t *testing.T) {
	item, err := NewShopItem("T-Shirt", "Cotton t-shirt", decimal.RequireFromString("19.99"), []shared.ID{2})
	require.NoError(t, err)

	err = item.Update("T-Shirt XL", "Cotton t-shirt", decimal.RequireFromString("21.50"), []shared.ID{3})

	require.NoError(t, err)
	assert.Equal(t, "T-Shirt XL", item.Title)
	assert.Equal(t, []shared.ID{3}, item.CategoryIDs)
	assert.Equal(t, "21.50", item.Price.StringFixed(2))
}

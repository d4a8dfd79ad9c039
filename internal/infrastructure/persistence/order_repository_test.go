package persistence

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()

	type fixture struct {
		orders   *GormOrderRepository
		customer shared.ID
		other    shared.ID
		widget   shared.ID
		gadget   shared.ID
	}
	setup := func(t *testing.T) fixture {
		db := newTestDatabase(t)
		customers := NewGormCustomerRepository(db.DB)
		items := NewGormShopItemRepository(db.DB)
		return fixture{
			orders:   NewGormOrderRepository(db.DB),
			customer: mustCustomer(t, customers, "Ada", "ada@example.com").ID,
			other:    mustCustomer(t, customers, "Bob", "bob@example.com").ID,
			widget:   mustShopItem(t, items, "Widget", "2.50").ID,
			gadget:   mustShopItem(t, items, "Gadget", "7.00").ID,
		}
	}

	t.Run("Create stores the order with items", func(t *testing.T) {
		f := setup(t)
		o := mustOrder(t, f.orders, f.customer,
			order.ItemInput{ShopItemID: f.widget, Quantity: 2},
			order.ItemInput{ShopItemID: f.gadget, Quantity: 1},
		)
		require.NotZero(t, o.ID)
		require.Len(t, o.Items, 2)
		assert.NotZero(t, o.Items[0].ID)
		assert.Equal(t, o.ID, o.Items[0].OrderID)

		found, err := f.orders.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, f.customer, found.CustomerID)
		require.Len(t, found.Items, 2)
		assert.Equal(t, f.widget, found.Items[0].ShopItemID)
		assert.Equal(t, 2, found.Items[0].Quantity)
		assert.Equal(t, 3, found.TotalQuantity())
	})

	t.Run("order without items is allowed", func(t *testing.T) {
		f := setup(t)
		o := mustOrder(t, f.orders, f.customer)

		found, err := f.orders.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Items)
	})

	t.Run("Update replaces items and keeps created_at", func(t *testing.T) {
		f := setup(t)
		o := mustOrder(t, f.orders, f.customer, order.ItemInput{ShopItemID: f.widget, Quantity: 2})
		before, err := f.orders.FindByID(ctx, o.ID)
		require.NoError(t, err)

		require.NoError(t, before.Replace(f.other, []order.ItemInput{{ShopItemID: f.gadget, Quantity: 5}}))
		require.NoError(t, f.orders.Update(ctx, before))

		after, err := f.orders.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, f.other, after.CustomerID)
		assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
		require.Len(t, after.Items, 1)
		assert.Equal(t, f.gadget, after.Items[0].ShopItemID)
		assert.Equal(t, 5, after.Items[0].Quantity)

		used, err := f.orders.ExistsByShopItem(ctx, f.widget)
		require.NoError(t, err)
		assert.False(t, used)
	})

	t.Run("Update of a missing order returns not found", func(t *testing.T) {
		f := setup(t)
		o, err := order.NewOrder(f.customer, nil)
		require.NoError(t, err)
		o.ID = 77

		assert.ErrorIs(t, f.orders.Update(ctx, o), shared.ErrNotFound)
	})

	t.Run("FindByCustomer and ExistsByShopItem", func(t *testing.T) {
		f := setup(t)
		mine := mustOrder(t, f.orders, f.customer, order.ItemInput{ShopItemID: f.widget, Quantity: 1})
		mustOrder(t, f.orders, f.other, order.ItemInput{ShopItemID: f.widget, Quantity: 4})

		list, err := f.orders.FindByCustomer(ctx, f.customer)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, mine.ID, list[0].ID)

		used, err := f.orders.ExistsByShopItem(ctx, f.widget)
		require.NoError(t, err)
		assert.True(t, used)

		used, err = f.orders.ExistsByShopItem(ctx, f.gadget)
		require.NoError(t, err)
		assert.False(t, used)
	})

	t.Run("Delete removes the order and its items", func(t *testing.T) {
		f := setup(t)
		o := mustOrder(t, f.orders, f.customer, order.ItemInput{ShopItemID: f.widget, Quantity: 1})

		require.NoError(t, f.orders.Delete(ctx, o.ID))

		exists, err := f.orders.ExistsByID(ctx, o.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		used, err := f.orders.ExistsByShopItem(ctx, f.widget)
		require.NoError(t, err)
		assert.False(t, used)

		assert.ErrorIs(t, f.orders.Delete(ctx, o.ID), shared.ErrNotFound)
	})
}

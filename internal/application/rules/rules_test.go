package rules_test

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/application/rules"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	rules    *rules.Rules
	repos    testutil.Repositories
	ada      *customer.Customer
	books    *catalog.Category
	widget   *catalog.ShopItem
	unsold   *catalog.ShopItem
	adaOrder *order.Order
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := testutil.NewRepositories(testutil.NewTestDatabase(t).DB)

	ada, err := customer.NewCustomer("Ada", "Lovelace", "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, repos.Customers.Save(ctx, ada))

	books, err := catalog.NewCategory("Books", "")
	require.NoError(t, err)
	require.NoError(t, repos.Categories.Save(ctx, books))

	widget, err := catalog.NewShopItem("Widget", "", decimal.NewFromInt(5), []shared.ID{books.ID})
	require.NoError(t, err)
	require.NoError(t, repos.ShopItems.Save(ctx, widget))

	unsold, err := catalog.NewShopItem("Unsold", "", decimal.NewFromInt(1), nil)
	require.NoError(t, err)
	require.NoError(t, repos.ShopItems.Save(ctx, unsold))

	o, err := order.NewOrder(ada.ID, []order.ItemInput{{ShopItemID: widget.ID, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, repos.Orders.Create(ctx, o))

	return fixture{
		rules:    rules.New(repos.Customers, repos.Categories, repos.ShopItems, repos.Orders),
		repos:    repos,
		ada:      ada,
		books:    books,
		widget:   widget,
		unsold:   unsold,
		adaOrder: o,
	}
}

func TestValidateUniqueEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		excludeID shared.ID
		want      bool
	}{
		{"new address is unique", "grace@example.com", 0, true},
		{"existing address is taken", "ada@example.com", 0, false},
		{"comparison ignores case and spaces", "  ADA@Example.COM ", 0, false},
		{"own record is excluded", "ada@example.com", f.ada.ID, true},
		{"other record is not excluded", "ada@example.com", f.ada.ID + 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.rules.ValidateUniqueEmail(ctx, tt.email, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestValidateExistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.rules.ValidateCustomerExists(ctx, f.ada.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.rules.ValidateCustomerExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.rules.ValidateCustomerExists(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.rules.ValidateShopItemExists(ctx, f.widget.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.rules.ValidateShopItemExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateShopItemNotReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.rules.ValidateShopItemNotReferenced(ctx, f.widget.ID)
	require.NoError(t, err)
	assert.False(t, ok, "widget is on an order")

	ok, err = f.rules.ValidateShopItemNotReferenced(ctx, f.unsold.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.repos.Orders.Delete(ctx, f.adaOrder.ID))
	ok, err = f.rules.ValidateShopItemNotReferenced(ctx, f.widget.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateShopItemsExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing, err := f.rules.ValidateShopItemsExist(ctx, []shared.ID{f.widget.ID, f.unsold.ID, f.widget.ID})
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = f.rules.ValidateShopItemsExist(ctx, []shared.ID{500, f.widget.ID, 501, 500})
	require.NoError(t, err)
	assert.Equal(t, []shared.ID{500, 501}, missing)
}

func TestValidateCategoriesExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing, err := f.rules.ValidateCategoriesExist(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = f.rules.ValidateCategoriesExist(ctx, []shared.ID{f.books.ID, 42})
	require.NoError(t, err)
	assert.Equal(t, []shared.ID{42}, missing)
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ecommerce/backend/internal/application/rules"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	categories *CategoryService
	shopItems  *ShopItemService
	repos      testutil.Repositories
}

func newServices(t *testing.T) services {
	t.Helper()
	repos := testutil.NewRepositories(testutil.NewTestDatabase(t).DB)
	r := rules.New(repos.Customers, repos.Categories, repos.ShopItems, repos.Orders)
	return services{
		categories: NewCategoryService(repos.Categories, repos.ShopItems),
		shopItems:  NewShopItemService(repos.ShopItems, repos.Categories, r),
		repos:      repos,
	}
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("create, get and list", func(t *testing.T) {
		s := newServices(t)
		created, err := s.categories.Create(ctx, CreateCategoryRequest{Title: " Books ", Description: "Paper"})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Books", created.Title)

		_, err = s.shopItems.Create(ctx, CreateShopItemRequest{Title: "Go book", Price: price("39.99"), CategoryIDs: []uint{created.ID}})
		require.NoError(t, err)

		detail, err := s.categories.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, detail.ShopItems, 1)
		assert.Equal(t, "Go book", detail.ShopItems[0].Title)

		list, err := s.categories.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Nil(t, list[0].ShopItems)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		s := newServices(t)
		_, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "  "})
		assertCode(t, err, "INVALID_TITLE")
	})

	t.Run("update", func(t *testing.T) {
		s := newServices(t)
		created, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "Books"})
		require.NoError(t, err)

		require.NoError(t, s.categories.Update(ctx, created.ID, UpdateCategoryRequest{Title: "Novels", Description: "Fiction"}))
		got, err := s.categories.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Novels", got.Title)
		assert.Equal(t, "Fiction", got.Description)

		wrong := created.ID + 1
		assertCode(t, s.categories.Update(ctx, created.ID, UpdateCategoryRequest{ID: &wrong, Title: "X"}), shared.CodeIDMismatch)
		assert.ErrorIs(t, s.categories.Update(ctx, 999, UpdateCategoryRequest{Title: "X"}), shared.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newServices(t)
		created, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "Books"})
		require.NoError(t, err)

		require.NoError(t, s.categories.Delete(ctx, created.ID))
		_, err = s.categories.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, s.categories.Delete(ctx, created.ID), shared.ErrNotFound)
	})
}

func TestShopItemService(t *testing.T) {
	ctx := context.Background()

	t.Run("create attaches categories", func(t *testing.T) {
		s := newServices(t)
		books, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "Books"})
		require.NoError(t, err)

		item, err := s.shopItems.Create(ctx, CreateShopItemRequest{
			Title:       "Programming Book",
			Price:       price("39.99"),
			CategoryIDs: []uint{books.ID, books.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{books.ID}, item.CategoryIDs)
		require.Len(t, item.Categories, 1)
		assert.Equal(t, "Books", item.Categories[0].Title)
		assert.Equal(t, "39.99", item.Price.StringFixed(2))
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		s := newServices(t)
		_, err := s.shopItems.Create(ctx, CreateShopItemRequest{Title: "X", Price: price("1"), CategoryIDs: []uint{77}})
		assertCode(t, err, shared.CodeCategoryNotFound)

		list, err := s.shopItems.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		s := newServices(t)
		_, err := s.shopItems.Create(ctx, CreateShopItemRequest{Title: "X", Price: price("-0.01")})
		assertCode(t, err, "INVALID_PRICE")
	})

	t.Run("update replaces the category set", func(t *testing.T) {
		s := newServices(t)
		books, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "Books"})
		require.NoError(t, err)
		games, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "Games"})
		require.NoError(t, err)
		item, err := s.shopItems.Create(ctx, CreateShopItemRequest{Title: "Chess", Price: price("10"), CategoryIDs: []uint{books.ID}})
		require.NoError(t, err)

		require.NoError(t, s.shopItems.Update(ctx, item.ID, UpdateShopItemRequest{
			Title:       "Chess",
			Price:       price("12.5"),
			CategoryIDs: []uint{games.ID},
		}))

		got, err := s.shopItems.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{games.ID}, got.CategoryIDs)
		assert.Equal(t, "12.50", got.Price.StringFixed(2))

		assertCode(t, s.shopItems.Update(ctx, item.ID, UpdateShopItemRequest{Title: "Chess", Price: price("1"), CategoryIDs: []uint{404}}), shared.CodeCategoryNotFound)
		assert.ErrorIs(t, s.shopItems.Update(ctx, 999, UpdateShopItemRequest{Title: "X", Price: price("1")}), shared.ErrNotFound)
	})

	t.Run("delete of a referenced item is a conflict", func(t *testing.T) {
		s := newServices(t)
		item, err := s.shopItems.Create(ctx, CreateShopItemRequest{Title: "Widget", Price: price("1")})
		require.NoError(t, err)

		c, err := customer.NewCustomer("Ada", "Lovelace", "ada@example.com")
		require.NoError(t, err)
		require.NoError(t, s.repos.Customers.Save(ctx, c))
		o, err := order.NewOrder(c.ID, []order.ItemInput{{ShopItemID: item.ID, Quantity: 1}})
		require.NoError(t, err)
		require.NoError(t, s.repos.Orders.Create(ctx, o))

		assertCode(t, s.shopItems.Delete(ctx, item.ID), shared.CodeShopItemReferenced)

		require.NoError(t, s.repos.Orders.Delete(ctx, o.ID))
		require.NoError(t, s.shopItems.Delete(ctx, item.ID))
		assert.ErrorIs(t, s.shopItems.Delete(ctx, item.ID), shared.ErrNotFound)
	})
}

func TestCatalogServices_RecordMutations(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	metrics, reader := testutil.NewShopMetrics(t)
	s.categories.SetMetrics(metrics)
	s.shopItems.SetMetrics(metrics)

	cat, err := s.categories.Create(ctx, CreateCategoryRequest{Title: "Garden"})
	require.NoError(t, err)
	require.NoError(t, s.categories.Update(ctx, cat.ID, UpdateCategoryRequest{Title: "Garden tools"}))

	item, err := s.shopItems.Create(ctx, CreateShopItemRequest{Title: "Rake", Price: price("12.00"), CategoryIDs: []uint{cat.ID}})
	require.NoError(t, err)
	require.NoError(t, s.shopItems.Update(ctx, item.ID, UpdateShopItemRequest{Title: "Rake", Price: price("14.00")}))
	require.NoError(t, s.shopItems.Delete(ctx, item.ID))

	// rejected writes are not counted
	_, err = s.shopItems.Create(ctx, CreateShopItemRequest{Title: "Hoe", Price: price("9.00"), CategoryIDs: []uint{9999}})
	require.Error(t, err)
	require.NoError(t, s.categories.Delete(ctx, cat.ID))

	assert.Equal(t, map[string]int64{
		"shop_item_category/create": 1,
		"shop_item_category/update": 1,
		"shop_item_category/delete": 1,
		"shop_item/create":          1,
		"shop_item/update":          1,
		"shop_item/delete":          1,
	}, testutil.MutationCounts(t, reader))
}

package persistence

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDatabase opens a private in-memory sqlite database with the schema applied
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabaseWithCustomLogger(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	}, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustCustomer(t *testing.T, repo *GormCustomerRepository, name, email string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(name, "Tester", email)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func mustCategory(t *testing.T, repo *GormCategoryRepository, title string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(title, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func mustShopItem(t *testing.T, repo *GormShopItemRepository, title, price string, categoryIDs ...shared.ID) *catalog.ShopItem {
	t.Helper()
	item, err := catalog.NewShopItem(title, "", decimal.RequireFromString(price), categoryIDs)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func mustOrder(t *testing.T, repo *GormOrderRepository, customerID shared.ID, lines ...order.ItemInput) *order.Order {
	t.Helper()
	o, err := order.NewOrder(customerID, lines)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

// Package testutil provides common test utilities for the shop backend.
// It contains helpers for opening throwaway databases, wiring the real
// repositories, and driving gin engines in tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDatabase opens a private in-memory sqlite database with the schema
// applied. It is closed when the test finishes.
func NewTestDatabase(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabaseWithCustomLogger(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	}, gormlogger.Discard)
	require.NoError(t, err, "Failed to open sqlite database")
	require.NoError(t, db.AutoMigrate(context.Background()), "Failed to migrate schema")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Repositories bundles the gorm repositories over one database
type Repositories struct {
	Customers  *persistence.GormCustomerRepository
	Categories *persistence.GormCategoryRepository
	ShopItems  *persistence.GormShopItemRepository
	Orders     *persistence.GormOrderRepository
}

// NewRepositories builds every repository over db
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Customers:  persistence.NewGormCustomerRepository(db),
		Categories: persistence.NewGormCategoryRepository(db),
		ShopItems:  persistence.NewGormShopItemRepository(db),
		Orders:     persistence.NewGormOrderRepository(db),
	}
}

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a postgres-dialect gorm DB backed by sqlmock
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	t.Cleanup(func() { _ = mockDB.Close() })
	return &MockDB{DB: gormDB, Mock: mock, SqlDB: mockDB}
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// ContextWithTimeout creates a context with a timeout for tests.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

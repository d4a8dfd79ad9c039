package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestGormCustomerRepository_Postgres(t *testing.T) {
	t.Run("FindByID queries by primary key", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormCustomerRepository(db)
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "surname", "email"}).
			AddRow(7, now, now, "Ada", "Lovelace", "ada@example.com")
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(7, 1).
			WillReturnRows(rows)

		c, err := repo.FindByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), c.ID)
		assert.Equal(t, "Ada", c.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FindByID maps no rows to not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WithArgs(9, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), 9)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExistsByEmail excludes the given id and normalizes", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "customers" WHERE email = $1 AND id <> $2`)).
			WithArgs("ada@example.com", 3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail(context.Background(), "  ADA@example.com ", 3)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save assigns an id and round trips", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)

		c := mustCustomer(t, repo, "Ada", "ada@example.com")
		assert.NotZero(t, c.ID)

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", found.Name)
		assert.Equal(t, "ada@example.com", found.Email)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("FindAll orders by id", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)
		first := mustCustomer(t, repo, "Ada", "ada@example.com")
		second := mustCustomer(t, repo, "Bob", "bob@example.com")

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)

		some, err := repo.FindByIDs(ctx, []uint{second.ID, 999})
		require.NoError(t, err)
		require.Len(t, some, 1)
		assert.Equal(t, "Bob", some[0].Name)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("Save updates an existing customer", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)
		c := mustCustomer(t, repo, "Ada", "ada@example.com")

		require.NoError(t, c.Update("Augusta", "King", "augusta@example.com"))
		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Augusta", found.Name)
		assert.Equal(t, "King", found.Surname)
		assert.Equal(t, "augusta@example.com", found.Email)
	})

	t.Run("Save of a missing customer returns not found", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)

		c, err := customer.NewCustomer("Ghost", "User", "ghost@example.com")
		require.NoError(t, err)
		c.ID = 404

		assert.ErrorIs(t, repo.Save(ctx, c), shared.ErrNotFound)
	})

	t.Run("duplicate email is rejected by the unique index", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)
		mustCustomer(t, repo, "Ada", "ada@example.com")

		dup, err := customer.NewCustomer("Other", "Person", "ADA@example.com")
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, dup))
	})

	t.Run("ExistsByEmail ignores the excluded customer", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)
		c := mustCustomer(t, repo, "Ada", "ada@example.com")

		exists, err := repo.ExistsByEmail(ctx, "Ada@Example.com", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "ada@example.com", c.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete cascades to orders and order items", func(t *testing.T) {
		db := newTestDatabase(t)
		customers := NewGormCustomerRepository(db.DB)
		items := NewGormShopItemRepository(db.DB)
		orders := NewGormOrderRepository(db.DB)

		c := mustCustomer(t, customers, "Ada", "ada@example.com")
		other := mustCustomer(t, customers, "Bob", "bob@example.com")
		item := mustShopItem(t, items, "Widget", "9.99")
		o := mustOrder(t, orders, c.ID, order.ItemInput{ShopItemID: item.ID, Quantity: 2})
		kept := mustOrder(t, orders, other.ID, order.ItemInput{ShopItemID: item.ID, Quantity: 1})

		require.NoError(t, customers.Delete(ctx, c.ID))

		exists, err := customers.ExistsByID(ctx, c.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = orders.FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		remaining, err := orders.FindByID(ctx, kept.ID)
		require.NoError(t, err)
		assert.Len(t, remaining.Items, 1)

		stillThere, err := items.ExistsByID(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, stillThere)
	})

	t.Run("Delete of a missing customer returns not found", func(t *testing.T) {
		db := newTestDatabase(t)
		repo := NewGormCustomerRepository(db.DB)
		assert.ErrorIs(t, repo.Delete(ctx, 12), shared.ErrNotFound)
	})
}

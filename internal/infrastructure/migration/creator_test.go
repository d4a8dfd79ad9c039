package migration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add orders index", "add_orders_index"},
		{"Add-Orders-Index", "add_orders_index"},
		{"ADD_ORDERS_INDEX", "add_orders_index"},
		{"add__orders__index", "add_orders_index"},
		{"Add Orders 123", "add_orders_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "init schema", "Customers and orders")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.up.sql"), first.UpPath)
	assert.FileExists(t, first.DownPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- Migration: init schema")
	assert.Contains(t, string(content), "-- Description: Customers and orders")

	second, err := CreateMigration(dir, "add-order-notes", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
}

func TestCreateMigration_ContinuesAfterHighestVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_late.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000003_early.up.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "next", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("sorted by numeric version", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []string{
			"000010_ten.up.sql", "000010_ten.down.sql",
			"000002_two.up.sql", "000002_two.down.sql",
			"README.md",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000099_dir.up.sql"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000002_two", "000010_ten"}, names)
	})

	t.Run("repository migrations", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
		require.NoError(t, err)
		assert.Contains(t, names, "000001_init_schema")
	})
}

func TestPendingAfter(t *testing.T) {
	names := []string{"000001_init_schema", "000002_notes", "000003_index", "bogus"}

	assert.Equal(t, names[:3], pendingAfter(names, 0))
	assert.Equal(t, []string{"000003_index"}, pendingAfter(names, 2))
	assert.Empty(t, pendingAfter(names, 3))
}

func TestApplied(t *testing.T) {
	changed, err := applied(nil)
	assert.True(t, changed)
	assert.NoError(t, err)

	changed, err = applied(migrate.ErrNoChange)
	assert.False(t, changed)
	assert.NoError(t, err)

	boom := errors.New("boom")
	_, err = applied(boom)
	assert.ErrorIs(t, err, boom)
}

func TestNewFromConfig_RejectsSQLite(t *testing.T) {
	_, err := NewFromConfig(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, "migrations", zap.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

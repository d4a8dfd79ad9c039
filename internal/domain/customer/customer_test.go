package customer

import (
	"strings"
	"testing"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer successfully", func(t *testing.T) {
		c, err := NewCustomer("John", "Doe", "john.doe@example.com")

		require.NoError(t, err)
		assert.Equal(t, "John", c.Name)
		assert.Equal(t, "Doe", c.Surname)
		assert.Equal(t, "john.doe@example.com", c.Email)
		assert.True(t, c.IsNew())
		assert.False(t, c.CreatedAt.IsZero())
	})

	t.Run("normalizes email and trims names", func(t *testing.T) {
		c, err := NewCustomer("  Jane ", "Smith", "  Jane.Smith@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, "Jane", c.Name)
		assert.Equal(t, "jane.smith@example.com", c.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewCustomer("", "Doe", "john@example.com")

		assert.Nil(t, c)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_NAME", de.Code)
	})

	t.Run("fails with too long surname", func(t *testing.T) {
		_, err := NewCustomer("John", strings.Repeat("x", MaxSurnameLength+1), "john@example.com")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100 characters")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewCustomer("John", "Doe", "not-an-email")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("John", "Doe", "john@example.com")
	require.NoError(t, err)
	c.ID = 7
	before := c.UpdatedAt

	t.Run("replaces all fields", func(t *testing.T) {
		err := c.Update("Johnny", "Doe-Smith", "johnny@example.com")

		require.NoError(t, err)
		assert.Equal(t, "Johnny", c.Name)
		assert.Equal(t, "Doe-Smith", c.Surname)
		assert.Equal(t, "johnny@example.com", c.Email)
		assert.Equal(t, shared.ID(7), c.ID)
		assert.False(t, c.UpdatedAt.Before(before))
	})

	t.Run("leaves customer unchanged on invalid input", func(t *testing.T) {
		err := c.Update("", "Doe", "john@example.com")

		assert.Error(t, err)
		assert.Equal(t, "Johnny", c.Name)
	})
}

func TestCustomer_FullName(t *testing.T) {
	c, err := NewCustomer("Bob", "Johnson", "bob.johnson@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob Johnson", c.FullName())
}

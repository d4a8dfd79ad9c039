package order

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Repository defines the interface for order persistence.
// Loaded orders always carry their items.
type Repository interface {
	shared.Repository[Order]

	// FindByCustomer returns all orders placed by the customer
	FindByCustomer(ctx context.Context, customerID shared.ID) ([]Order, error)

	// ExistsByShopItem reports whether any order line references the shop item
	ExistsByShopItem(ctx context.Context, shopItemID shared.ID) (bool, error)

	// Create inserts the order and its items in one transaction
	Create(ctx context.Context, o *Order) error

	// Update rewrites the order row and replaces its full item set in one
	// transaction. Returns shared.ErrNotFound when the order no longer exists.
	Update(ctx context.Context, o *Order) error
}

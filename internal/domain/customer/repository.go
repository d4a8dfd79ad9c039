package customer

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// Repository defines the interface for customer persistence
type Repository interface {
	shared.Repository[Customer]

	// FindByIDs returns the customers that exist among ids
	FindByIDs(ctx context.Context, ids []shared.ID) ([]Customer, error)

	// ExistsByEmail reports whether a customer other than excludeID uses the email.
	// Pass 0 to check against every customer.
	ExistsByEmail(ctx context.Context, email string, excludeID shared.ID) (bool, error)

	// Count returns the number of stored customers
	Count(ctx context.Context) (int64, error)

	// Save creates the customer when it has no ID, otherwise updates it.
	// The assigned ID is written back to the entity.
	Save(ctx context.Context, c *Customer) error

	// Delete removes the customer together with its orders and their items
	Delete(ctx context.Context, id shared.ID) error
}

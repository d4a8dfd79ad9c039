package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	shared.Repository[Category]

	// FindByIDs returns the categories that exist among ids
	FindByIDs(ctx context.Context, ids []shared.ID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, c *Category) error
}

// ShopItemRepository defines the interface for shop item persistence.
// Loaded items always carry their CategoryIDs.
type ShopItemRepository interface {
	shared.Repository[ShopItem]

	// FindByIDs returns the shop items that exist among ids
	FindByIDs(ctx context.Context, ids []shared.ID) ([]ShopItem, error)

	// FindByCategory returns all items assigned to the category
	FindByCategory(ctx context.Context, categoryID shared.ID) ([]ShopItem, error)

	// Save creates or updates the item and replaces its category set atomically
	Save(ctx context.Context, item *ShopItem) error
}

// Package rules holds the cross-entity consistency checks used by the
// application services before they write. Each check reads the current
// state and decides; the storage constraints remain the final authority.
package rules

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
)

// Rules evaluates validation rules against the repositories
type Rules struct {
	customers  customer.Repository
	categories catalog.CategoryRepository
	shopItems  catalog.ShopItemRepository
	orders     order.Repository
}

// New creates a Rules instance
func New(
	customers customer.Repository,
	categories catalog.CategoryRepository,
	shopItems catalog.ShopItemRepository,
	orders order.Repository,
) *Rules {
	return &Rules{
		customers:  customers,
		categories: categories,
		shopItems:  shopItems,
		orders:     orders,
	}
}

// ValidateUniqueEmail reports whether no customer other than excludeID uses
// the email. Pass 0 as excludeID when creating.
func (r *Rules) ValidateUniqueEmail(ctx context.Context, email string, excludeID shared.ID) (bool, error) {
	taken, err := r.customers.ExistsByEmail(ctx, customer.NormalizeEmail(email), excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// ValidateCustomerExists reports whether the customer exists
func (r *Rules) ValidateCustomerExists(ctx context.Context, id shared.ID) (bool, error) {
	if id == 0 {
		return false, nil
	}
	return r.customers.ExistsByID(ctx, id)
}

// ValidateShopItemExists reports whether the shop item exists
func (r *Rules) ValidateShopItemExists(ctx context.Context, id shared.ID) (bool, error) {
	if id == 0 {
		return false, nil
	}
	return r.shopItems.ExistsByID(ctx, id)
}

// ValidateShopItemNotReferenced reports whether no order line uses the shop item
func (r *Rules) ValidateShopItemNotReferenced(ctx context.Context, id shared.ID) (bool, error) {
	used, err := r.orders.ExistsByShopItem(ctx, id)
	if err != nil {
		return false, err
	}
	return !used, nil
}

// ValidateShopItemsExist returns the ids among ids that have no shop item,
// in input order with duplicates collapsed.
func (r *Rules) ValidateShopItemsExist(ctx context.Context, ids []shared.ID) ([]shared.ID, error) {
	ids = shared.UniqueIDs(ids)
	found, err := r.shopItems.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	present := make(map[shared.ID]struct{}, len(found))
	for i := range found {
		present[found[i].ID] = struct{}{}
	}
	return missing(ids, present), nil
}

// ValidateCategoriesExist returns the ids among ids that have no category
func (r *Rules) ValidateCategoriesExist(ctx context.Context, ids []shared.ID) ([]shared.ID, error) {
	ids = shared.UniqueIDs(ids)
	found, err := r.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	present := make(map[shared.ID]struct{}, len(found))
	for i := range found {
		present[found[i].ID] = struct{}{}
	}
	return missing(ids, present), nil
}

func missing(ids []shared.ID, present map[shared.ID]struct{}) []shared.ID {
	var out []shared.ID
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

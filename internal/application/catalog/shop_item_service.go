package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecommerce/backend/internal/application/rules"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
)

// ShopItemService handles shop item business operations
type ShopItemService struct {
	shopItemRepo catalog.ShopItemRepository
	categoryRepo catalog.CategoryRepository
	rules        *rules.Rules
	metrics      *telemetry.ShopMetrics
}

// NewShopItemService creates a new ShopItemService
func NewShopItemService(
	shopItemRepo catalog.ShopItemRepository,
	categoryRepo catalog.CategoryRepository,
	r *rules.Rules,
) *ShopItemService {
	return &ShopItemService{
		shopItemRepo: shopItemRepo,
		categoryRepo: categoryRepo,
		rules:        r,
	}
}

// SetMetrics enables shop metrics recording. A nil value disables it.
func (s *ShopItemService) SetMetrics(m *telemetry.ShopMetrics) {
	s.metrics = m
}

// List returns every shop item with its categories
func (s *ShopItemService) List(ctx context.Context) ([]ShopItemResponse, error) {
	items, err := s.shopItemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var ids []shared.ID
	for i := range items {
		ids = append(ids, items[i].CategoryIDs...)
	}
	lookup, err := s.categoryLookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ShopItemResponse, len(items))
	for i := range items {
		out[i] = ToShopItemResponse(&items[i], lookup)
	}
	return out, nil
}

// GetByID returns one shop item with its categories
func (s *ShopItemService) GetByID(ctx context.Context, id shared.ID) (*ShopItemResponse, error) {
	item, err := s.shopItemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shopItemNotFound(err, id)
	}
	return s.toResponse(ctx, item)
}

// Create creates a shop item assigned to existing categories
func (s *ShopItemService) Create(ctx context.Context, req CreateShopItemRequest) (*ShopItemResponse, error) {
	if req.Price == nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is required")
	}
	item, err := catalog.NewShopItem(req.Title, req.Description, *req.Price, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, item.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.shopItemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.metrics.RecordMutation(ctx, "shop_item", telemetry.OpCreate)
	return s.toResponse(ctx, item)
}

// Update replaces the shop item's fields and its whole category set
func (s *ShopItemService) Update(ctx context.Context, id shared.ID, req UpdateShopItemRequest) error {
	if req.ID != nil && *req.ID != id {
		return idMismatch(*req.ID, id)
	}
	if req.Price == nil {
		return shared.NewDomainError("INVALID_PRICE", "Price is required")
	}

	item, err := s.shopItemRepo.FindByID(ctx, id)
	if err != nil {
		return shopItemNotFound(err, id)
	}
	if err := item.Update(req.Title, req.Description, *req.Price, req.CategoryIDs); err != nil {
		return err
	}
	if err := s.checkCategories(ctx, item.CategoryIDs); err != nil {
		return err
	}

	if err := s.shopItemRepo.Save(ctx, item); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		exists, existsErr := s.shopItemRepo.ExistsByID(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return shopItemNotFound(err, id)
		}
		return fmt.Errorf("shop item %d: update affected no rows", id)
	}
	s.metrics.RecordMutation(ctx, "shop_item", telemetry.OpUpdate)
	return nil
}

// Delete removes a shop item that no order references
func (s *ShopItemService) Delete(ctx context.Context, id shared.ID) error {
	exists, err := s.rules.ValidateShopItemExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shopItemNotFound(shared.ErrNotFound, id)
	}

	free, err := s.rules.ValidateShopItemNotReferenced(ctx, id)
	if err != nil {
		return err
	}
	if !free {
		return shared.Newf(shared.CodeShopItemReferenced, "Shop item %d is referenced by existing orders", id)
	}

	if err := s.shopItemRepo.Delete(ctx, id); err != nil {
		return shopItemNotFound(err, id)
	}
	s.metrics.RecordMutation(ctx, "shop_item", telemetry.OpDelete)
	return nil
}

func (s *ShopItemService) checkCategories(ctx context.Context, ids []shared.ID) error {
	missing, err := s.rules.ValidateCategoriesExist(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return shared.Newf(shared.CodeCategoryNotFound, "Shop item categories not found: %s", joinIDs(missing))
	}
	return nil
}

func (s *ShopItemService) categoryLookup(ctx context.Context, ids []shared.ID) (map[uint]*catalog.Category, error) {
	categories, err := s.categoryRepo.FindByIDs(ctx, shared.UniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	lookup := make(map[uint]*catalog.Category, len(categories))
	for i := range categories {
		lookup[categories[i].ID] = &categories[i]
	}
	return lookup, nil
}

func (s *ShopItemService) toResponse(ctx context.Context, item *catalog.ShopItem) (*ShopItemResponse, error) {
	lookup, err := s.categoryLookup(ctx, item.CategoryIDs)
	if err != nil {
		return nil, err
	}
	resp := ToShopItemResponse(item, lookup)
	return &resp, nil
}

func shopItemNotFound(err error, id shared.ID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Newf(shared.ErrNotFound.Code, "Shop item %d not found", id)
	}
	return err
}

func joinIDs(ids []shared.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}

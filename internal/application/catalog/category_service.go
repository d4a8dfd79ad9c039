package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	shopItemRepo catalog.ShopItemRepository
	metrics      *telemetry.ShopMetrics
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	shopItemRepo catalog.ShopItemRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		shopItemRepo: shopItemRepo,
	}
}

// SetMetrics enables shop metrics recording. A nil value disables it.
func (s *CategoryService) SetMetrics(m *telemetry.ShopMetrics) {
	s.metrics = m
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, nil
}

// GetByID retrieves a category with the shop items assigned to it
func (s *CategoryService) GetByID(ctx context.Context, id shared.ID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, categoryNotFound(err, id)
	}
	items, err := s.shopItemRepo.FindByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	resp.ShopItems = make([]ShopItemSummaryView, len(items))
	for i := range items {
		resp.ShopItems[i] = toShopItemSummary(&items[i])
	}
	return &resp, nil
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.metrics.RecordMutation(ctx, "shop_item_category", telemetry.OpCreate)
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update replaces the category's title and description
func (s *CategoryService) Update(ctx context.Context, id shared.ID, req UpdateCategoryRequest) error {
	if req.ID != nil && *req.ID != id {
		return idMismatch(*req.ID, id)
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return categoryNotFound(err, id)
	}
	if err := category.Update(req.Title, req.Description); err != nil {
		return err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		exists, existsErr := s.categoryRepo.ExistsByID(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return categoryNotFound(err, id)
		}
		return fmt.Errorf("category %d: update affected no rows", id)
	}
	s.metrics.RecordMutation(ctx, "shop_item_category", telemetry.OpUpdate)
	return nil
}

// Delete removes the category. Shop items keep existing without it.
func (s *CategoryService) Delete(ctx context.Context, id shared.ID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return categoryNotFound(err, id)
	}
	s.metrics.RecordMutation(ctx, "shop_item_category", telemetry.OpDelete)
	return nil
}

func categoryNotFound(err error, id shared.ID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Newf(shared.ErrNotFound.Code, "Shop item category %d not found", id)
	}
	return err
}

func idMismatch(bodyID, pathID shared.ID) error {
	return shared.Newf(shared.CodeIDMismatch, "Body id %d does not match path id %d", bodyID, pathID)
}

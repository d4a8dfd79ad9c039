package catalog

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a shop item category
type CreateCategoryRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateCategoryRequest replaces a category's fields
type UpdateCategoryRequest struct {
	ID          *uint  `json:"id"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// CategoryResponse represents a category in API responses. ShopItems is
// only filled on the detail view.
type CategoryResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
	ShopItems   []ShopItemSummaryView `json:"shopItems,omitempty"`
}

// CategorySummaryView is a category as nested under a shop item
type CategorySummaryView struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// CreateShopItemRequest represents a request to create a shop item
type CreateShopItemRequest struct {
	Title       string           `json:"title" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=1000"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	CategoryIDs []uint           `json:"categoryIds" binding:"omitempty,dive,min=1"`
}

// UpdateShopItemRequest replaces a shop item's fields and its category set
type UpdateShopItemRequest struct {
	ID          *uint            `json:"id"`
	Title       string           `json:"title" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=1000"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	CategoryIDs []uint           `json:"categoryIds" binding:"omitempty,dive,min=1"`
}

// ShopItemResponse represents a shop item with its categories
type ShopItemResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Price       decimal.Decimal       `json:"price"`
	CategoryIDs []uint                `json:"categoryIds"`
	Categories  []CategorySummaryView `json:"categories"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ShopItemSummaryView is a shop item as nested under a category
type ShopItemSummaryView struct {
	ID    uint            `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToShopItemResponse converts a domain ShopItem, resolving category titles
// from the given lookup. Categories missing from the lookup are skipped.
func ToShopItemResponse(item *catalog.ShopItem, categories map[uint]*catalog.Category) ShopItemResponse {
	resp := ShopItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		CategoryIDs: append([]uint{}, item.CategoryIDs...),
		Categories:  make([]CategorySummaryView, 0, len(item.CategoryIDs)),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	for _, id := range item.CategoryIDs {
		if c, ok := categories[id]; ok {
			resp.Categories = append(resp.Categories, CategorySummaryView{ID: c.ID, Title: c.Title})
		}
	}
	return resp
}

func toShopItemSummary(item *catalog.ShopItem) ShopItemSummaryView {
	return ShopItemSummaryView{ID: item.ID, Title: item.Title, Price: item.Price}
}

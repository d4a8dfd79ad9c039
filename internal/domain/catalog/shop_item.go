package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits stored for a price
const PriceScale = 2

// ShopItem is a purchasable item. CategoryIDs is the item's side of the
// many-to-many relation with Category.
type ShopItem struct {
	shared.BaseEntity
	Title       string
	Description string
	Price       decimal.Decimal
	CategoryIDs []shared.ID
}

// NewShopItem creates a new shop item
func NewShopItem(title, description string, price decimal.Decimal, categoryIDs []shared.ID) (*ShopItem, error) {
	item := &ShopItem{BaseEntity: shared.NewBaseEntity()}
	if err := item.apply(title, description, price, categoryIDs); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces every mutable field, including the full category set
func (s *ShopItem) Update(title, description string, price decimal.Decimal, categoryIDs []shared.ID) error {
	if err := s.apply(title, description, price, categoryIDs); err != nil {
		return err
	}
	s.Touch()
	return nil
}

// InCategory reports whether the item is assigned to the category
func (s *ShopItem) InCategory(id shared.ID) bool {
	for _, cid := range s.CategoryIDs {
		if cid == id {
			return true
		}
	}
	return false
}

func (s *ShopItem) apply(title, description string, price decimal.Decimal, categoryIDs []shared.ID) error {
	title = strings.TrimSpace(title)
	if err := validateTitle("Shop item", title); err != nil {
		return err
	}
	if err := validateDescription("Shop item", description); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	s.Title = title
	s.Description = description
	s.Price = price.Round(PriceScale)
	s.CategoryIDs = shared.UniqueIDs(categoryIDs)
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	// decimal(18,2) leaves 16 integer digits
	if price.Abs().GreaterThanOrEqual(decimal.New(1, 16)) {
		return shared.NewDomainError("INVALID_PRICE", "Price exceeds the supported range")
	}
	return nil
}

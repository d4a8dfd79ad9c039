package models

import (
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the shop item category.
type CategoryModel struct {
	BaseModel
	Title       string                         `gorm:"type:varchar(200);not null"`
	Description string                         `gorm:"type:varchar(1000);not null;default:''"`
	Mappings    []ShopItemCategoryMappingModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "shop_item_categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Title:       c.Title,
		Description: c.Description,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ShopItemModel is the persistence model for the ShopItem entity.
// Category membership lives in ShopItemCategoryMappingModel.
type ShopItemModel struct {
	BaseModel
	Title       string                         `gorm:"type:varchar(200);not null"`
	Description string                         `gorm:"type:varchar(1000);not null;default:''"`
	Price       decimal.Decimal                `gorm:"type:decimal(18,2);not null;check:chk_shop_items_price,price >= 0"`
	Mappings    []ShopItemCategoryMappingModel `gorm:"foreignKey:ShopItemID;constraint:OnDelete:CASCADE"`
	OrderItems  []OrderItemModel               `gorm:"foreignKey:ShopItemID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (ShopItemModel) TableName() string {
	return "shop_items"
}

// ToDomain converts the persistence model to a domain ShopItem. categoryIDs
// comes from the mapping table.
func (m *ShopItemModel) ToDomain(categoryIDs []uint) *catalog.ShopItem {
	if categoryIDs == nil {
		categoryIDs = []shared.ID{}
	}
	return &catalog.ShopItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		CategoryIDs: categoryIDs,
	}
}

// ShopItemModelFromDomain creates a persistence model from a domain ShopItem.
func ShopItemModelFromDomain(s *catalog.ShopItem) *ShopItemModel {
	m := &ShopItemModel{
		Title:       s.Title,
		Description: s.Description,
		Price:       s.Price,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// MappingsFromDomain returns the join rows for a shop item's categories.
func MappingsFromDomain(s *catalog.ShopItem) []ShopItemCategoryMappingModel {
	rows := make([]ShopItemCategoryMappingModel, 0, len(s.CategoryIDs))
	for _, cid := range s.CategoryIDs {
		rows = append(rows, ShopItemCategoryMappingModel{ShopItemID: s.ID, CategoryID: cid})
	}
	return rows
}

// ShopItemCategoryMappingModel is the many-to-many join row between shop
// items and categories.
type ShopItemCategoryMappingModel struct {
	ShopItemID uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index:idx_shop_item_category_mapping_category"`
}

// TableName returns the table name for GORM
func (ShopItemCategoryMappingModel) TableName() string {
	return "shop_item_category_mapping"
}

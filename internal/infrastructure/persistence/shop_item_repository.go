package persistence

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShopItemRepository implements catalog.ShopItemRepository using GORM
type GormShopItemRepository struct {
	db *gorm.DB
}

// NewGormShopItemRepository creates a new GormShopItemRepository
func NewGormShopItemRepository(db *gorm.DB) *GormShopItemRepository {
	return &GormShopItemRepository{db: db}
}

// FindAll returns every shop item with its category IDs
func (r *GormShopItemRepository) FindAll(ctx context.Context) ([]catalog.ShopItem, error) {
	var rows []models.ShopItemModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withCategories(ctx, rows)
}

// FindByID finds a shop item by its ID
func (r *GormShopItemRepository) FindByID(ctx context.Context, id shared.ID) (*catalog.ShopItem, error) {
	var model models.ShopItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "shop item")
	}
	items, err := r.withCategories(ctx, []models.ShopItemModel{model})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// FindByIDs returns the existing shop items among ids
func (r *GormShopItemRepository) FindByIDs(ctx context.Context, ids []shared.ID) ([]catalog.ShopItem, error) {
	if len(ids) == 0 {
		return []catalog.ShopItem{}, nil
	}
	var rows []models.ShopItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withCategories(ctx, rows)
}

// FindByCategory returns all shop items linked to the category
func (r *GormShopItemRepository) FindByCategory(ctx context.Context, categoryID shared.ID) ([]catalog.ShopItem, error) {
	db := r.db.WithContext(ctx)
	linked := db.Model(&models.ShopItemCategoryMappingModel{}).
		Select("shop_item_id").
		Where("category_id = ?", categoryID)

	var rows []models.ShopItemModel
	if err := db.Where("id IN (?)", linked).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withCategories(ctx, rows)
}

// ExistsByID checks if a shop item with the ID exists
func (r *GormShopItemRepository) ExistsByID(ctx context.Context, id shared.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ShopItemModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates the item row and rewrites its category links
// inside one transaction.
func (r *GormShopItemRepository) Save(ctx context.Context, item *catalog.ShopItem) error {
	model := models.ShopItemModelFromDomain(item)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.IsNew() {
			if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
				return translateError(err, "shop item")
			}
		} else {
			result := tx.Model(&models.ShopItemModel{}).
				Where("id = ?", item.ID).
				Updates(map[string]any{
					"title":       model.Title,
					"description": model.Description,
					"price":       model.Price,
					"updated_at":  model.UpdatedAt,
				})
			if result.Error != nil {
				return translateError(result.Error, "shop item")
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
			if err := tx.Where("shop_item_id = ?", item.ID).Delete(&models.ShopItemCategoryMappingModel{}).Error; err != nil {
				return err
			}
		}

		links := models.MappingsFromDomain(&catalog.ShopItem{
			BaseEntity:  shared.BaseEntity{ID: model.ID},
			CategoryIDs: item.CategoryIDs,
		})
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return translateError(err, "shop item categories")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	item.BaseEntity = model.BaseModel.ToDomain()
	return nil
}

// Delete removes the shop item and its category links. The order_items
// foreign key restricts deletion of an item still used by an order; that
// violation surfaces as a conflict.
func (r *GormShopItemRepository) Delete(ctx context.Context, id shared.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_item_id = ?", id).Delete(&models.ShopItemCategoryMappingModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.ShopItemModel{})
		if result.Error != nil {
			return translateError(result.Error, "shop item")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// withCategories attaches category IDs to the loaded rows with one query
func (r *GormShopItemRepository) withCategories(ctx context.Context, rows []models.ShopItemModel) ([]catalog.ShopItem, error) {
	items := make([]catalog.ShopItem, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var links []models.ShopItemCategoryMappingModel
	if err := r.db.WithContext(ctx).
		Where("shop_item_id IN ?", ids).
		Order("shop_item_id, category_id").
		Find(&links).Error; err != nil {
		return nil, err
	}

	byItem := make(map[uint][]uint, len(rows))
	for _, l := range links {
		byItem[l.ShopItemID] = append(byItem[l.ShopItemID], l.CategoryID)
	}
	for i := range rows {
		items[i] = *rows[i].ToDomain(byItem[rows[i].ID])
	}
	return items, nil
}

var _ catalog.ShopItemRepository = (*GormShopItemRepository)(nil)

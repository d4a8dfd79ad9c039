package persistence

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindAll returns every category ordered by ID
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(rows), nil
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id shared.ID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "category")
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the existing categories among ids
func (r *GormCategoryRepository) FindByIDs(ctx context.Context, ids []shared.ID) ([]catalog.Category, error) {
	if len(ids) == 0 {
		return []catalog.Category{}, nil
	}
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(rows), nil
}

// ExistsByID checks if a category with the ID exists
func (r *GormCategoryRepository) ExistsByID(ctx context.Context, id shared.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	model := models.CategoryModelFromDomain(c)

	if c.IsNew() {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
			return translateError(err, "category")
		}
		c.BaseEntity = model.BaseModel.ToDomain()
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "category")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the category and its shop item links. Shop items
// themselves are kept.
func (r *GormCategoryRepository) Delete(ctx context.Context, id shared.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.ShopItemCategoryMappingModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.CategoryModel{})
		if result.Error != nil {
			return translateError(result.Error, "category")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func categoriesToDomain(rows []models.CategoryModel) []catalog.Category {
	out := make([]catalog.Category, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

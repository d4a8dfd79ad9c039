package persistence

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

// FindAll returns every order with its items
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := preloadItems(r.db.WithContext(ctx)).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(rows), nil
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id shared.ID) (*order.Order, error) {
	var model models.OrderModel
	if err := preloadItems(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "order")
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns the customer's orders with their items
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID shared.ID) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := preloadItems(r.db.WithContext(ctx)).
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(rows), nil
}

// ExistsByID checks if an order with the ID exists
func (r *GormOrderRepository) ExistsByID(ctx context.Context, id shared.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByShopItem checks if any order line references the shop item
func (r *GormOrderRepository) ExistsByShopItem(ctx context.Context, shopItemID shared.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("shop_item_id = ?", shopItemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	var items []models.OrderItemModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return translateError(err, "order")
		}
		var err error
		items, err = insertItems(tx, model.ID, o.Items)
		return err
	})
	if err != nil {
		return err
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.Items = itemsToDomain(items)
	return nil
}

// Update rewrites the order's customer and replaces all of its items in
// one transaction. created_at is never written.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	var items []models.OrderItemModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ?", o.ID).
			Update("customer_id", o.CustomerID)
		if result.Error != nil {
			return translateError(result.Error, "order")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		var err error
		items, err = insertItems(tx, o.ID, o.Items)
		return err
	})
	if err != nil {
		return err
	}

	o.Items = itemsToDomain(items)
	return nil
}

// Delete removes the order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id shared.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.OrderModel{})
		if result.Error != nil {
			return translateError(result.Error, "order")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func insertItems(tx *gorm.DB, orderID uint, items []order.Item) ([]models.OrderItemModel, error) {
	rows := models.OrderItemModelsFromDomain(orderID, items)
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, translateError(err, "order item")
	}
	return rows, nil
}

func itemsToDomain(rows []models.OrderItemModel) []order.Item {
	out := make([]order.Item, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

func ordersToDomain(rows []models.OrderModel) []order.Order {
	out := make([]order.Order, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ order.Repository = (*GormOrderRepository)(nil)

package persistence

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindAll returns every customer ordered by ID
func (r *GormCustomerRepository) FindAll(ctx context.Context) ([]customer.Customer, error) {
	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	customers := make([]customer.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id shared.ID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "customer")
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the existing customers among ids
func (r *GormCustomerRepository) FindByIDs(ctx context.Context, ids []shared.ID) ([]customer.Customer, error) {
	if len(ids) == 0 {
		return []customer.Customer{}, nil
	}
	var rows []models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	customers := make([]customer.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// ExistsByID checks if a customer with the ID exists
func (r *GormCustomerRepository) ExistsByID(ctx context.Context, id shared.ID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks if another customer already uses the email
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID shared.ID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("email = ?", customer.NormalizeEmail(email))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the total number of customers
func (r *GormCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)

	if c.IsNew() {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
			return translateError(err, "customer")
		}
		c.BaseEntity = model.BaseModel.ToDomain()
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"surname":    model.Surname,
			"email":      model.Email,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "customer")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the customer, its orders and their items in one transaction.
// The foreign keys cascade as well; deleting explicitly keeps the behavior
// identical on engines where constraint enforcement is switched off.
func (r *GormCustomerRepository) Delete(ctx context.Context, id shared.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.OrderModel{}).Select("id").Where("customer_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.OrderModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.CustomerModel{})
		if result.Error != nil {
			return translateError(result.Error, "customer")
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ customer.Repository = (*GormCustomerRepository)(nil)

package models

import (
	"github.com/ecommerce/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer entity.
type CustomerModel struct {
	BaseModel
	Name    string       `gorm:"type:varchar(100);not null"`
	Surname string       `gorm:"type:varchar(100);not null"`
	Email   string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_email"`
	Orders  []OrderModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Surname:    m.Surname,
		Email:      m.Email,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:    c.Name,
		Surname: c.Surname,
		Email:   c.Email,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

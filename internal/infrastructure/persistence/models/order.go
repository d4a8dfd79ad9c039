package models

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	ID         uint             `gorm:"primaryKey;autoIncrement"`
	CustomerID uint             `gorm:"not null;index:idx_orders_customer_id"`
	CreatedAt  time.Time        `gorm:"not null"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model, including loaded items, to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &order.Order{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		CreatedAt:  m.CreatedAt,
		Items:      items,
	}
}

// OrderModelFromDomain creates a persistence model without items; items are
// written separately with OrderItemModelsFromDomain.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CreatedAt:  o.CreatedAt,
	}
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	OrderID    uint `gorm:"not null;index:idx_order_items_order_id"`
	ShopItemID uint `gorm:"not null;index:idx_order_items_shop_item_id"`
	Quantity   int  `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order Item.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		ID:         m.ID,
		OrderID:    m.OrderID,
		ShopItemID: m.ShopItemID,
		Quantity:   m.Quantity,
	}
}

// OrderItemModelsFromDomain converts the order's items, bound to orderID.
func OrderItemModelsFromDomain(orderID uint, items []order.Item) []OrderItemModel {
	out := make([]OrderItemModel, len(items))
	for i, it := range items {
		out[i] = OrderItemModel{
			OrderID:    orderID,
			ShopItemID: it.ShopItemID,
			Quantity:   it.Quantity,
		}
	}
	return out
}

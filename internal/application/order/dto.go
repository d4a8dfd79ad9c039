package order

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested order line
type OrderItemRequest struct {
	ShopItemID uint `json:"shopItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"gte=1"`
}

// CreateOrderRequest represents a request to place an order.
// The creation time is always assigned by the server.
type CreateOrderRequest struct {
	CustomerID uint               `json:"customerId" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateOrderRequest replaces an order's customer and its full item list
type UpdateOrderRequest struct {
	ID         *uint              `json:"id"`
	CustomerID uint               `json:"customerId" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

// OrderResponse represents an order with its customer and item details
type OrderResponse struct {
	ID         uint                `json:"id"`
	CustomerID uint                `json:"customerId"`
	CreatedAt  time.Time           `json:"createdAt"`
	Customer   *CustomerView       `json:"customer"`
	Items      []OrderItemResponse `json:"items"`
}

// OrderItemResponse is an order line with its shop item
type OrderItemResponse struct {
	ID         uint          `json:"id"`
	ShopItemID uint          `json:"shopItemId"`
	Quantity   int           `json:"quantity"`
	ShopItem   *ShopItemView `json:"shopItem"`
}

// CustomerView is the customer as nested under an order
type CustomerView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// ShopItemView is the shop item as nested under an order line
type ShopItemView struct {
	ID    uint            `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

func toItemInputs(items []OrderItemRequest) []order.ItemInput {
	out := make([]order.ItemInput, len(items))
	for i, it := range items {
		out[i] = order.ItemInput{ShopItemID: it.ShopItemID, Quantity: it.Quantity}
	}
	return out
}

// ToOrderResponse converts a domain Order, attaching the related customer
// and shop items found in the lookups.
func ToOrderResponse(o *order.Order, customers map[uint]*customer.Customer, items map[uint]*catalog.ShopItem) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		CreatedAt:  o.CreatedAt,
		Items:      make([]OrderItemResponse, len(o.Items)),
	}
	if c, ok := customers[o.CustomerID]; ok {
		resp.Customer = &CustomerView{ID: c.ID, Name: c.Name, Surname: c.Surname, Email: c.Email}
	}
	for i, it := range o.Items {
		line := OrderItemResponse{ID: it.ID, ShopItemID: it.ShopItemID, Quantity: it.Quantity}
		if s, ok := items[it.ShopItemID]; ok {
			line.ShopItem = &ShopItemView{ID: s.ID, Title: s.Title, Price: s.Price}
		}
		resp.Items[i] = line
	}
	return resp
}

package customer

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Surname string `json:"surname" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,max=255,email"`
}

// UpdateCustomerRequest replaces every mutable field of a customer.
// ID is optional; when present it must match the path.
type UpdateCustomerRequest struct {
	ID      *uint  `json:"id"`
	Name    string `json:"name" binding:"required,max=100"`
	Surname string `json:"surname" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,max=255,email"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uint                   `json:"id"`
	Name      string                 `json:"name"`
	Surname   string                 `json:"surname"`
	Email     string                 `json:"email"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Orders    []OrderSummaryResponse `json:"orders"`
}

// OrderSummaryResponse is the short form of an order shown under its customer
type OrderSummaryResponse struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	ItemCount     int       `json:"itemCount"`
	TotalQuantity int       `json:"totalQuantity"`
}

// ToCustomerResponse converts a domain Customer and its orders to a response
func ToCustomerResponse(c *customer.Customer, orders []order.Order) CustomerResponse {
	resp := CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Surname:   c.Surname,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Orders:    make([]OrderSummaryResponse, 0, len(orders)),
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, OrderSummaryResponse{
			ID:            orders[i].ID,
			CreatedAt:     orders[i].CreatedAt,
			ItemCount:     len(orders[i].Items),
			TotalQuantity: orders[i].TotalQuantity(),
		})
	}
	return resp
}

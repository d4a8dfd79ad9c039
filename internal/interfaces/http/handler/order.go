package handler

import (
	orderapp "github.com/ecommerce/backend/internal/application/order"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// OrderItemRequest is one requested order line
// @Description Order line
type OrderItemRequest struct {
	ShopItemID uint `json:"shopItemId" binding:"required" example:"1"`
	Quantity   int  `json:"quantity" binding:"gte=1" example:"2"`
}

// CreateOrderRequest represents a request to place an order
// @Description Request body for placing an order. The creation time is assigned by the server.
type CreateOrderRequest struct {
	CustomerID uint               `json:"customerId" binding:"required" example:"1"`
	Items      []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateOrderRequest represents a request to replace an order
// @Description Request body for updating an order. items replaces every existing line.
type UpdateOrderRequest struct {
	ID         *uint              `json:"id" example:"1"`
	CustomerID uint               `json:"customerId" binding:"required" example:"1"`
	Items      []OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

func toOrderLines(items []OrderItemRequest) []orderapp.OrderItemRequest {
	out := make([]orderapp.OrderItemRequest, len(items))
	for i, it := range items {
		out[i] = orderapp.OrderItemRequest{ShopItemID: it.ShopItemID, Quantity: it.Quantity}
	}
	return out
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Returns every order with its customer, lines and shop items
// @Tags         orders
// @Produce      json
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID godoc
// @ID           getOrderById
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Create godoc
// @ID           createOrder
// @Summary      Place an order
// @Description  Create an order for an existing customer. Every line must name an existing shop item.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body CreateOrderRequest true "Order creation request"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), orderapp.CreateOrderRequest{
		CustomerID: req.CustomerID,
		Items:      toOrderLines(req.Items),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Update godoc
// @ID           updateOrder
// @Summary      Update an order
// @Description  Replace the order's customer and all of its lines in one transaction
// @Tags         orders
// @Accept       json
// @Param        id path int true "Order ID"
// @Param        request body UpdateOrderRequest true "Order update request"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.orderService.Update(c.Request.Context(), id, orderapp.UpdateOrderRequest{
		ID:         req.ID,
		CustomerID: req.CustomerID,
		Items:      toOrderLines(req.Items),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @ID           deleteOrder
// @Summary      Delete an order
// @Description  Delete an order and its lines
// @Tags         orders
// @Param        id path int true "Order ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

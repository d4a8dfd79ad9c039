package handler

import (
	customerapp "github.com/ecommerce/backend/internal/application/customer"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *customerapp.Service
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *customerapp.Service) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomerRequest represents a request to create a new customer
// @Description Request body for creating a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"John"`
	Surname string `json:"surname" binding:"required,max=100" example:"Doe"`
	Email   string `json:"email" binding:"required,max=255,email" example:"john.doe@example.com"`
}

// UpdateCustomerRequest represents a request to replace a customer
// @Description Request body for updating a customer. id is optional and must match the path.
type UpdateCustomerRequest struct {
	ID      *uint  `json:"id" example:"1"`
	Name    string `json:"name" binding:"required,max=100" example:"John"`
	Surname string `json:"surname" binding:"required,max=100" example:"Doe"`
	Email   string `json:"email" binding:"required,max=255,email" example:"john.doe@example.com"`
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Returns every customer with a summary of their orders
// @Tags         customers
// @Produce      json
// @Success      200 {object} APIResponse[[]customerapp.CustomerResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}

// GetByID godoc
// @ID           getCustomerById
// @Summary      Get customer by ID
// @Description  Retrieve a customer with their orders
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a new customer
// @Description  Create a customer. The email must not be used by another customer (case-insensitive).
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), customerapp.CreateCustomerRequest{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Replace a customer's name, surname and email
// @Tags         customers
// @Accept       json
// @Param        id path int true "Customer ID"
// @Param        request body UpdateCustomerRequest true "Customer update request"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.customerService.Update(c.Request.Context(), id, customerapp.UpdateCustomerRequest{
		ID:      req.ID,
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Delete a customer together with their orders and order items
// @Tags         customers
// @Param        id path int true "Customer ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ShopItemHandler handles shop item endpoints
type ShopItemHandler struct {
	BaseHandler
	shopItemService *catalogapp.ShopItemService
}

// NewShopItemHandler creates a new ShopItemHandler
func NewShopItemHandler(shopItemService *catalogapp.ShopItemService) *ShopItemHandler {
	return &ShopItemHandler{
		shopItemService: shopItemService,
	}
}

// CreateShopItemRequest represents a request to create a shop item
// @Description Request body for creating a shop item. price accepts a JSON number or string.
type CreateShopItemRequest struct {
	Title       string           `json:"title" binding:"required,max=200" example:"Smartphone"`
	Description string           `json:"description" binding:"max=1000" example:"Latest model smartphone"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"699.99"`
	CategoryIDs []uint           `json:"categoryIds" binding:"omitempty,dive,min=1" example:"1"`
}

// UpdateShopItemRequest represents a request to replace a shop item
// @Description Request body for updating a shop item. categoryIds replaces the whole category set.
type UpdateShopItemRequest struct {
	ID          *uint            `json:"id" example:"1"`
	Title       string           `json:"title" binding:"required,max=200" example:"Smartphone"`
	Description string           `json:"description" binding:"max=1000" example:"Latest model smartphone"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"649.99"`
	CategoryIDs []uint           `json:"categoryIds" binding:"omitempty,dive,min=1" example:"1"`
}

// List godoc
// @ID           listShopItems
// @Summary      List shop items
// @Description  Returns every shop item with its categories
// @Tags         shopitems
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.ShopItemResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /shopitems [get]
func (h *ShopItemHandler) List(c *gin.Context) {
	items, err := h.shopItemService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// GetByID godoc
// @ID           getShopItemById
// @Summary      Get shop item by ID
// @Tags         shopitems
// @Produce      json
// @Param        id path int true "Shop item ID"
// @Success      200 {object} APIResponse[catalogapp.ShopItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /shopitems/{id} [get]
func (h *ShopItemHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.shopItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Create godoc
// @ID           createShopItem
// @Summary      Create a shop item
// @Description  Create a shop item assigned to existing categories
// @Tags         shopitems
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body CreateShopItemRequest true "Shop item creation request"
// @Success      201 {object} APIResponse[catalogapp.ShopItemResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /shopitems [post]
func (h *ShopItemHandler) Create(c *gin.Context) {
	var req CreateShopItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.shopItemService.Create(c.Request.Context(), catalogapp.CreateShopItemRequest{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Update godoc
// @ID           updateShopItem
// @Summary      Update a shop item
// @Tags         shopitems
// @Accept       json
// @Param        id path int true "Shop item ID"
// @Param        request body UpdateShopItemRequest true "Shop item update request"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /shopitems/{id} [put]
func (h *ShopItemHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateShopItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.shopItemService.Update(c.Request.Context(), id, catalogapp.UpdateShopItemRequest{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @ID           deleteShopItem
// @Summary      Delete a shop item
// @Description  Delete a shop item. Fails with 409 while any order line references it.
// @Tags         shopitems
// @Param        id path int true "Shop item ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /shopitems/{id} [delete]
func (h *ShopItemHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.shopItemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles shop item category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategoryRequest represents a request to create a category
// @Description Request body for creating a shop item category
type CreateCategoryRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Electronics"`
	Description string `json:"description" binding:"max=1000" example:"Electronic devices and gadgets"`
}

// UpdateCategoryRequest represents a request to replace a category
// @Description Request body for updating a shop item category
type UpdateCategoryRequest struct {
	ID          *uint  `json:"id" example:"1"`
	Title       string `json:"title" binding:"required,max=200" example:"Electronics"`
	Description string `json:"description" binding:"max=1000" example:"Phones, laptops and accessories"`
}

// List godoc
// @ID           listShopItemCategories
// @Summary      List shop item categories
// @Tags         shopitemcategories
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.CategoryResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /shopitemcategories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// GetByID godoc
// @ID           getShopItemCategoryById
// @Summary      Get category by ID
// @Description  Retrieve a category with the shop items assigned to it
// @Tags         shopitemcategories
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /shopitemcategories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Create godoc
// @ID           createShopItemCategory
// @Summary      Create a category
// @Tags         shopitemcategories
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /shopitemcategories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), catalogapp.CreateCategoryRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// Update godoc
// @ID           updateShopItemCategory
// @Summary      Update a category
// @Tags         shopitemcategories
// @Accept       json
// @Param        id path int true "Category ID"
// @Param        request body UpdateCategoryRequest true "Category update request"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /shopitemcategories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.categoryService.Update(c.Request.Context(), id, catalogapp.UpdateCategoryRequest{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @ID           deleteShopItemCategory
// @Summary      Delete a category
// @Description  Delete a category. Its shop items stay, without the category link.
// @Tags         shopitemcategories
// @Param        id path int true "Category ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /shopitemcategories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

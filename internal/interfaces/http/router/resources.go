package router

import (
	"github.com/gin-gonic/gin"
)

// ResourceHandler is the List/Get/Create/Update/Delete family every entity exposes
type ResourceHandler interface {
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// NewResourceGroup mounts h under prefix:
//
//	GET    prefix        List
//	GET    prefix/:id    GetByID
//	POST   prefix        Create
//	PUT    prefix/:id    Update
//	DELETE prefix/:id    Delete
func NewResourceGroup(name, prefix string, h ResourceHandler) *DomainGroup {
	return NewDomainGroup(name, prefix).
		GET("", h.List).
		GET("/:id", h.GetByID).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// ShopHandlers holds the entity handlers served by the API
type ShopHandlers struct {
	Customers  ResourceHandler
	Categories ResourceHandler
	ShopItems  ResourceHandler
	Orders     ResourceHandler
}

// RegisterShop registers the customer, category, shop item and order resources
func (r *Router) RegisterShop(h ShopHandlers) *Router {
	return r.
		Register(NewResourceGroup("customers", "/customers", h.Customers)).
		Register(NewResourceGroup("shopitemcategories", "/shopitemcategories", h.Categories)).
		Register(NewResourceGroup("shopitems", "/shopitems", h.ShopItems)).
		Register(NewResourceGroup("orders", "/orders", h.Orders))
}

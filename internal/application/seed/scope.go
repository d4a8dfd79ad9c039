package seed

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
)

// TransactionScope runs fn with repositories bound to one database
// transaction. An error from fn rolls the whole transaction back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the repositories inside a transaction
type TransactionalRepositories interface {
	CustomerRepo() customer.Repository
	CategoryRepo() catalog.CategoryRepository
	ShopItemRepo() catalog.ShopItemRepository
	OrderRepo() order.Repository
}

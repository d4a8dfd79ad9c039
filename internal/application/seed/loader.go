// Package seed loads the demo data set into an empty database.
package seed

import (
	"context"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result reports what a Load call did
type Result struct {
	Skipped    bool `json:"skipped"`
	Customers  int  `json:"customers"`
	Categories int  `json:"categories"`
	ShopItems  int  `json:"shopItems"`
	Orders     int  `json:"orders"`
}

type customerSeed struct {
	name, surname, email string
}

type itemSeed struct {
	title, description, price string
	categories                []string
}

type lineSeed struct {
	item     string
	quantity int
}

type orderSeed struct {
	customerEmail string
	lines         []lineSeed
}

var (
	seedCustomers = []customerSeed{
		{"John", "Doe", "john.doe@example.com"},
		{"Jane", "Smith", "jane.smith@example.com"},
		{"Bob", "Johnson", "bob.johnson@example.com"},
	}

	seedCategories = []struct{ title, description string }{
		{"Electronics", "Electronic devices and gadgets"},
		{"Clothing", "Apparel and accessories"},
		{"Books", "Books and educational materials"},
		{"Home & Garden", "Home improvement and garden supplies"},
	}

	seedItems = []itemSeed{
		{"Smartphone", "Latest model smartphone", "699.99", []string{"Electronics"}},
		{"Laptop", "High-performance laptop", "1299.99", []string{"Electronics"}},
		{"T-Shirt", "Cotton t-shirt", "19.99", []string{"Clothing"}},
		{"Jeans", "Denim jeans", "49.99", []string{"Clothing"}},
		{"Programming Book", "Learn programming", "39.99", []string{"Books"}},
	}

	seedOrders = []orderSeed{
		{"john.doe@example.com", []lineSeed{{"Smartphone", 1}, {"T-Shirt", 2}}},
		{"jane.smith@example.com", []lineSeed{{"Laptop", 1}}},
	}
)

// Loader inserts the demo data set when the database has no customers
type Loader struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewLoader creates a Loader
func NewLoader(scope TransactionScope, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{scope: scope, logger: logger}
}

// Load inserts the data set in one transaction. It does nothing when any
// customer already exists, so running it repeatedly is safe.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	var result Result

	err := l.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		count, err := repos.CustomerRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		if count > 0 {
			result.Skipped = true
			return nil
		}

		customers, err := insertCustomers(ctx, repos.CustomerRepo())
		if err != nil {
			return err
		}
		categories, err := insertCategories(ctx, repos.CategoryRepo())
		if err != nil {
			return err
		}
		items, err := insertItems(ctx, repos.ShopItemRepo(), categories)
		if err != nil {
			return err
		}
		orders, err := insertOrders(ctx, repos.OrderRepo(), customers, items)
		if err != nil {
			return err
		}

		result = Result{
			Customers:  len(customers),
			Categories: len(categories),
			ShopItems:  len(items),
			Orders:     orders,
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed database: %w", err)
	}

	if result.Skipped {
		l.logger.Info("Seed skipped, database already has customers")
	} else {
		l.logger.Info("Seed data loaded",
			zap.Int("customers", result.Customers),
			zap.Int("categories", result.Categories),
			zap.Int("shop_items", result.ShopItems),
			zap.Int("orders", result.Orders),
		)
	}
	return result, nil
}

func insertCustomers(ctx context.Context, repo customer.Repository) (map[string]shared.ID, error) {
	ids := make(map[string]shared.ID, len(seedCustomers))
	for _, s := range seedCustomers {
		c, err := customer.NewCustomer(s.name, s.surname, s.email)
		if err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("insert customer %s: %w", s.email, err)
		}
		ids[c.Email] = c.ID
	}
	return ids, nil
}

func insertCategories(ctx context.Context, repo catalog.CategoryRepository) (map[string]shared.ID, error) {
	ids := make(map[string]shared.ID, len(seedCategories))
	for _, s := range seedCategories {
		c, err := catalog.NewCategory(s.title, s.description)
		if err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("insert category %s: %w", s.title, err)
		}
		ids[c.Title] = c.ID
	}
	return ids, nil
}

func insertItems(ctx context.Context, repo catalog.ShopItemRepository, categories map[string]shared.ID) (map[string]shared.ID, error) {
	ids := make(map[string]shared.ID, len(seedItems))
	for _, s := range seedItems {
		categoryIDs := make([]shared.ID, 0, len(s.categories))
		for _, title := range s.categories {
			categoryIDs = append(categoryIDs, categories[title])
		}
		item, err := catalog.NewShopItem(s.title, s.description, decimal.RequireFromString(s.price), categoryIDs)
		if err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, item); err != nil {
			return nil, fmt.Errorf("insert shop item %s: %w", s.title, err)
		}
		ids[item.Title] = item.ID
	}
	return ids, nil
}

func insertOrders(ctx context.Context, repo order.Repository, customers, items map[string]shared.ID) (int, error) {
	for _, s := range seedOrders {
		lines := make([]order.ItemInput, 0, len(s.lines))
		for _, l := range s.lines {
			lines = append(lines, order.ItemInput{ShopItemID: items[l.item], Quantity: l.quantity})
		}
		o, err := order.NewOrder(customers[s.customerEmail], lines)
		if err != nil {
			return 0, err
		}
		if err := repo.Create(ctx, o); err != nil {
			return 0, fmt.Errorf("insert order for %s: %w", s.customerEmail, err)
		}
	}
	return len(seedOrders), nil
}

package order

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// MaxQuantity bounds a single line's quantity
const MaxQuantity = 1_000_000

// Item is a single order line. It references its shop item by ID only.
type Item struct {
	ID         shared.ID
	OrderID    shared.ID
	ShopItemID shared.ID
	Quantity   int
}

// Order is placed by a customer and owns its items. CreatedAt is fixed
// when the order is created and never changes afterwards.
type Order struct {
	ID         shared.ID
	CustomerID shared.ID
	CreatedAt  time.Time
	Items      []Item
}

// ItemInput describes a requested order line
type ItemInput struct {
	ShopItemID shared.ID
	Quantity   int
}

// NewOrder creates an order for the customer with the given lines
func NewOrder(customerID shared.ID, items []ItemInput) (*Order, error) {
	o := &Order{CreatedAt: time.Now()}
	if err := o.apply(customerID, items); err != nil {
		return nil, err
	}
	return o, nil
}

// Replace swaps the customer and the whole item list. Existing item IDs
// are discarded; persistence rewrites the lines from scratch.
func (o *Order) Replace(customerID shared.ID, items []ItemInput) error {
	return o.apply(customerID, items)
}

// ShopItemIDs returns the distinct shop items referenced by the order
func (o *Order) ShopItemIDs() []shared.ID {
	ids := make([]shared.ID, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ShopItemID)
	}
	return shared.UniqueIDs(ids)
}

// TotalQuantity sums the quantity of all lines
func (o *Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

func (o *Order) apply(customerID shared.ID, inputs []ItemInput) error {
	if customerID == 0 {
		return shared.NewDomainError("INVALID_CUSTOMER", "Order must reference a customer")
	}
	items := make([]Item, 0, len(inputs))
	for i, in := range inputs {
		if in.ShopItemID == 0 {
			return shared.Newf("INVALID_ITEM", "Item %d must reference a shop item", i)
		}
		if in.Quantity <= 0 {
			return shared.Newf("INVALID_QUANTITY", "Item %d quantity must be positive", i)
		}
		if in.Quantity > MaxQuantity {
			return shared.Newf("INVALID_QUANTITY", "Item %d quantity cannot exceed %d", i, MaxQuantity)
		}
		items = append(items, Item{
			OrderID:    o.ID,
			ShopItemID: in.ShopItemID,
			Quantity:   in.Quantity,
		})
	}
	o.CustomerID = customerID
	o.Items = items
	return nil
}

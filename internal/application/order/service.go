package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecommerce/backend/internal/application/rules"
	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// Service handles order business operations
type Service struct {
	orders    order.Repository
	customers customer.Repository
	shopItems catalog.ShopItemRepository
	rules     *rules.Rules
	metrics   *telemetry.ShopMetrics
}

// NewService creates a new order Service
func NewService(
	orders order.Repository,
	customers customer.Repository,
	shopItems catalog.ShopItemRepository,
	r *rules.Rules,
) *Service {
	return &Service{
		orders:    orders,
		customers: customers,
		shopItems: shopItems,
		rules:     r,
	}
}

// SetMetrics enables shop metrics recording. A nil value disables it.
func (s *Service) SetMetrics(m *telemetry.ShopMetrics) {
	s.metrics = m
}

// List returns every order with its customer and shop items attached
func (s *Service) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]*order.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	customers, items, err := s.lookups(ctx, refs...)
	if err != nil {
		return nil, err
	}

	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i], customers, items)
	}
	return out, nil
}

// GetByID returns one order with its related entities
func (s *Service) GetByID(ctx context.Context, id shared.ID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, orderNotFound(err, id)
	}
	return s.toResponse(ctx, o)
}

// Create places a new order for an existing customer
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, req.CustomerID),
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, len(req.Items)),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	o, err := order.NewOrder(req.CustomerID, toItemInputs(req.Items))
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, o); err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, o.ID)

	customers, items, err := s.lookups(ctx, o)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMutation(ctx, "order", telemetry.OpCreate)
	s.metrics.RecordOrder(ctx, telemetry.OpCreate, len(o.Items), orderValue(o, items))

	out := ToOrderResponse(o, customers, items)
	return &out, nil
}

// Update swaps the order's customer and replaces all of its items.
// The creation time is left untouched.
func (s *Service) Update(ctx context.Context, id shared.ID, req UpdateOrderRequest) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id),
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, len(req.Items)),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if req.ID != nil && *req.ID != id {
		return shared.Newf(shared.CodeIDMismatch, "Body id %d does not match path id %d", *req.ID, id)
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return orderNotFound(err, id)
	}
	if err := o.Replace(req.CustomerID, toItemInputs(req.Items)); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, o); err != nil {
		return err
	}

	if err := s.orders.Update(ctx, o); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		exists, existsErr := s.orders.ExistsByID(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return orderNotFound(err, id)
		}
		return fmt.Errorf("order %d: update affected no rows", id)
	}
	s.metrics.RecordMutation(ctx, "order", telemetry.OpUpdate)
	s.metrics.RecordOrder(ctx, telemetry.OpUpdate, len(o.Items), decimal.Zero)
	return nil
}

// Delete removes the order and its items
func (s *Service) Delete(ctx context.Context, id shared.ID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return orderNotFound(err, id)
	}
	s.metrics.RecordMutation(ctx, "order", telemetry.OpDelete)
	return nil
}

func (s *Service) checkReferences(ctx context.Context, o *order.Order) error {
	ok, err := s.rules.ValidateCustomerExists(ctx, o.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.Newf(shared.CodeCustomerNotFound, "Customer %d not found", o.CustomerID)
	}

	missing, err := s.rules.ValidateShopItemsExist(ctx, o.ShopItemIDs())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		parts := make([]string, len(missing))
		for i, id := range missing {
			parts[i] = fmt.Sprint(id)
		}
		return shared.Newf(shared.CodeShopItemNotFound, "Shop items not found: %s", strings.Join(parts, ", "))
	}
	return nil
}

func (s *Service) toResponse(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	customers, items, err := s.lookups(ctx, o)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o, customers, items)
	return &resp, nil
}

// lookups loads the customers and shop items referenced by the orders with
// one query each.
func (s *Service) lookups(ctx context.Context, orders ...*order.Order) (map[uint]*customer.Customer, map[uint]*catalog.ShopItem, error) {
	var customerIDs, itemIDs []shared.ID
	for _, o := range orders {
		customerIDs = append(customerIDs, o.CustomerID)
		itemIDs = append(itemIDs, o.ShopItemIDs()...)
	}

	customers, err := s.customers.FindByIDs(ctx, shared.UniqueIDs(customerIDs))
	if err != nil {
		return nil, nil, err
	}
	items, err := s.shopItems.FindByIDs(ctx, shared.UniqueIDs(itemIDs))
	if err != nil {
		return nil, nil, err
	}

	byCustomer := make(map[uint]*customer.Customer, len(customers))
	for i := range customers {
		byCustomer[customers[i].ID] = &customers[i]
	}
	byItem := make(map[uint]*catalog.ShopItem, len(items))
	for i := range items {
		byItem[items[i].ID] = &items[i]
	}
	return byCustomer, byItem, nil
}

// orderValue sums price times quantity over the lines whose item is known.
func orderValue(o *order.Order, items map[uint]*catalog.ShopItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		if s, ok := items[it.ShopItemID]; ok {
			total = total.Add(s.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return total
}

func orderNotFound(err error, id shared.ID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Newf(shared.ErrNotFound.Code, "Order %d not found", id)
	}
	return err
}

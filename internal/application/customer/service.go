package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce/backend/internal/application/rules"
	"github.com/ecommerce/backend/internal/domain/customer"
	"github.com/ecommerce/backend/internal/domain/order"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
)

// Service handles customer-related business operations
type Service struct {
	customers customer.Repository
	orders    order.Repository
	rules     *rules.Rules
	metrics   *telemetry.ShopMetrics
}

// NewService creates a new customer Service
func NewService(customers customer.Repository, orders order.Repository, r *rules.Rules) *Service {
	return &Service{
		customers: customers,
		orders:    orders,
		rules:     r,
	}
}

// SetMetrics enables shop metrics recording. A nil value disables it.
func (s *Service) SetMetrics(m *telemetry.ShopMetrics) {
	s.metrics = m
}

// List returns every customer with a summary of their orders
func (s *Service) List(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[shared.ID][]order.Order)
	for _, o := range orders {
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o)
	}

	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i], byCustomer[customers[i].ID])
	}
	return out, nil
}

// GetByID returns one customer with their orders
func (s *Service) GetByID(ctx context.Context, id shared.ID) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	orders, err := s.orders.FindByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c, orders)
	return &resp, nil
}

// Create creates a new customer after checking the email is unused
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	c, err := customer.NewCustomer(req.Name, req.Surname, req.Email)
	if err != nil {
		return nil, err
	}

	unique, err := s.rules.ValidateUniqueEmail(ctx, c.Email, 0)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, duplicateEmail(c.Email)
	}

	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	s.metrics.RecordMutation(ctx, "customer", telemetry.OpCreate)

	resp := ToCustomerResponse(c, nil)
	return &resp, nil
}

// Update replaces the customer's name, surname and email
func (s *Service) Update(ctx context.Context, id shared.ID, req UpdateCustomerRequest) error {
	if req.ID != nil && *req.ID != id {
		return shared.Newf(shared.CodeIDMismatch, "Body id %d does not match path id %d", *req.ID, id)
	}

	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return notFound(err, id)
	}
	if err := c.Update(req.Name, req.Surname, req.Email); err != nil {
		return err
	}

	unique, err := s.rules.ValidateUniqueEmail(ctx, c.Email, id)
	if err != nil {
		return err
	}
	if !unique {
		return duplicateEmail(c.Email)
	}

	if err := s.customers.Save(ctx, c); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.vanished(ctx, id)
		}
		return err
	}
	s.metrics.RecordMutation(ctx, "customer", telemetry.OpUpdate)
	return nil
}

// Delete removes the customer together with their orders
func (s *Service) Delete(ctx context.Context, id shared.ID) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}
	s.metrics.RecordMutation(ctx, "customer", telemetry.OpDelete)
	return nil
}

// vanished decides the outcome of an update that touched no rows
func (s *Service) vanished(ctx context.Context, id shared.ID) error {
	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(shared.ErrNotFound, id)
	}
	return fmt.Errorf("customer %d: update affected no rows", id)
}

func notFound(err error, id shared.ID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Newf(shared.ErrNotFound.Code, "Customer %d not found", id)
	}
	return err
}

func duplicateEmail(email string) error {
	return shared.Newf(shared.CodeDuplicateEmail, "Email %s is already in use", email)
}

package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives no meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Mutation operations reported by ShopMetrics.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ShopMetrics counts writes to customers, categories, shop items and orders,
// and tracks order sizes.
type ShopMetrics struct {
	mutations  *Counter
	orderLines *Histogram
	orderValue *Counter
}

// NewShopMetrics creates the shop instruments on meter.
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	mutations, err := NewCounter(meter, "shop_mutations_total",
		"Successful create, update and delete operations by resource", "{operation}")
	if err != nil {
		return nil, err
	}
	orderLines, err := NewHistogram(meter, HistogramOpts{
		Name:        "shop_order_lines",
		Description: "Number of lines per saved order",
		Unit:        "{line}",
		Boundaries:  OrderLineBuckets,
	})
	if err != nil {
		return nil, err
	}
	orderValue, err := NewCounter(meter, "shop_order_value_cents_total",
		"Cumulative value of created orders in minor currency units", "{cent}")
	if err != nil {
		return nil, err
	}

	return &ShopMetrics{mutations: mutations, orderLines: orderLines, orderValue: orderValue}, nil
}

// RecordMutation counts one successful write on resource.
func (m *ShopMetrics) RecordMutation(ctx context.Context, resource, operation string) {
	if m == nil {
		return
	}
	m.mutations.Inc(ctx, AttrResource.String(resource), AttrOperation.String(operation))
}

// RecordOrder records the line count of a saved order and, on create, its value.
func (m *ShopMetrics) RecordOrder(ctx context.Context, operation string, lines int, value decimal.Decimal) {
	if m == nil {
		return
	}
	m.orderLines.Record(ctx, float64(lines), AttrOperation.String(operation))
	if operation == OpCreate && value.IsPositive() {
		m.orderValue.Add(ctx, value.Shift(2).Round(0).IntPart())
	}
}

package replenishment

import (
	"context"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
)

// Repository is the client side of the platform's batch pipeline endpoints.
// Timeouts belong to the underlying transport; callers never retry
// automatically.
type Repository interface {
	// GenerateForecasts runs the read-only forecast stage for the requested
	// alerts and returns one bundle per supplier.
	GenerateForecasts(ctx context.Context, req model.PipelineRequest) ([]model.SupplierForecast, error)

	// GenerateOrders runs the side-effecting order-generation stage. A result
	// with per-item failures is a normal return, not an error.
	GenerateOrders(ctx context.Context, req model.PipelineRequest) (*model.BatchResult, error)

	// FetchOrderSummaries resolves generated purchase-order ids into display
	// summaries. Only called when at least one order id exists.
	FetchOrderSummaries(ctx context.Context, orderIDs []int64) ([]model.OrderSummary, error)
}

package replenishment

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment/dto"
)

// Validation and sequencing errors. These are refused client-side of the
// platform: none of them ever produces a remote call.
var (
	ErrEmptySelection = errors.New("selection is empty")
	ErrInvalidHorizon = errors.New("forecast horizon must be a positive number of days")
	ErrWrongStage     = errors.New("action not allowed in the current stage")
	ErrStageBusy      = errors.New("a request for this stage is already in flight")
	ErrRunSuperseded  = errors.New("workflow was reset while the request was in flight")
	ErrNoResult       = errors.New("no batch result available yet")
)

// UseCase drives one replenishment workflow instance: alert selection,
// forecast review and purchase-order generation, in that order.
type UseCase interface {
	// Alert pool.
	RefreshAlerts(ctx context.Context) error
	Groups() []dto.GroupView
	AlertCount() int

	// Selection.
	Toggle(alertID int64, included bool)
	ToggleForSupplier(supplierID int64, included bool)
	ClearSelection()
	SelectionSize() int
	SelectedIDs() []int64

	// Configuration.
	SetHorizon(days int) error
	Horizon() int

	// Pipeline.
	Stage() model.Stage
	State() dto.SessionState
	GenerateForecasts(ctx context.Context) error
	Forecasts() []model.SupplierForecast
	GenerateOrders(ctx context.Context, operatorID *int64, notes string) error
	Result() (*dto.ResultView, error)
	Reset()
}

package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-replenishment-service/internal/alert"
	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment/dto"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const fallbackHorizonDays = 30

// workflowUseCase drives one replenishment run:
// SELECTING → REVIEWING_FORECASTS → ORDERS_GENERATED, forward only.
//
// The mutex serializes state transitions; it is NOT held across remote calls.
// Per-stage atomic flags refuse a second forward action while one is in
// flight, and a run token lets responses that complete after a Reset be
// discarded instead of resurrecting a dead run.
type workflowUseCase struct {
	alerts alert.UseCase
	repo   replenishment.Repository
	logger logger.ZapLogger

	mu              sync.Mutex
	stage           model.Stage
	horizon         int
	selection       *selectionTracker
	capturedIDs     []int64
	capturedHorizon int
	forecasts       []model.SupplierForecast
	result          *model.BatchResult
	resultView      *dto.ResultView
	runToken        uint64

	forecastLoading *atomic.Bool
	orderProcessing *atomic.Bool
	summaryLoading  *atomic.Bool
}

func NewWorkflowUseCase(alerts alert.UseCase, repo replenishment.Repository, log logger.ZapLogger, defaultHorizonDays int) replenishment.UseCase {
	if defaultHorizonDays <= 0 {
		defaultHorizonDays = fallbackHorizonDays
	}
	uc := &workflowUseCase{
		alerts:          alerts,
		repo:            repo,
		logger:          log,
		stage:           model.StageSelecting,
		horizon:         defaultHorizonDays,
		selection:       newSelectionTracker(),
		forecastLoading: atomic.NewBool(false),
		orderProcessing: atomic.NewBool(false),
		summaryLoading:  atomic.NewBool(false),
	}
	// Stale selection ids are pruned on every store refresh.
	alerts.Subscribe(uc.onAlertsRefreshed)
	return uc
}

func (uc *workflowUseCase) onAlertsRefreshed(snapshot []model.Alert) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.selection.Prune(snapshot)
}

func (uc *workflowUseCase) RefreshAlerts(ctx context.Context) error {
	return uc.alerts.Refresh(ctx)
}

func (uc *workflowUseCase) Groups() []dto.GroupView {
	groups := uc.alerts.Groups()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	views := make([]dto.GroupView, 0, len(groups))
	for _, g := range groups {
		view := dto.GroupView{SupplierGroup: g}
		for _, a := range g.Alerts {
			if uc.selection.Has(a.ID) {
				view.SelectedCount++
				view.SelectedIDs = append(view.SelectedIDs, a.ID)
			}
		}
		views = append(views, view)
	}
	return views
}

func (uc *workflowUseCase) AlertCount() int {
	return uc.alerts.Count()
}

func (uc *workflowUseCase) Toggle(alertID int64, included bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.selection.Toggle(alertID, included)
}

func (uc *workflowUseCase) ToggleForSupplier(supplierID int64, included bool) {
	for _, g := range uc.alerts.Groups() {
		if g.SupplierID != supplierID {
			continue
		}
		uc.mu.Lock()
		uc.selection.ToggleGroup(g, included)
		uc.mu.Unlock()
		return
	}
	// Unknown supplier: nothing grouped under it, so nothing to toggle.
}

func (uc *workflowUseCase) ClearSelection() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.selection.Clear()
}

func (uc *workflowUseCase) SelectionSize() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.selection.Size()
}

func (uc *workflowUseCase) SelectedIDs() []int64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.selection.IDs()
}

// SetHorizon adjusts the forecast horizon. Locked once forecasts are
// captured: the horizon the operator reviewed is the horizon that gets
// ordered.
func (uc *workflowUseCase) SetHorizon(days int) error {
	if days <= 0 {
		return replenishment.ErrInvalidHorizon
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.stage != model.StageSelecting {
		return replenishment.ErrWrongStage
	}
	uc.horizon = days
	return nil
}

func (uc *workflowUseCase) Horizon() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.horizon
}

func (uc *workflowUseCase) Stage() model.Stage {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.stage
}

func (uc *workflowUseCase) State() dto.SessionState {
	uc.mu.Lock()
	stage := uc.stage
	horizon := uc.horizon
	selected := uc.selection.Size()
	uc.mu.Unlock()

	return dto.SessionState{
		StageIndex:    int(stage),
		StageName:     stage.String(),
		AlertCount:    uc.alerts.Count(),
		SelectionSize: selected,
		HorizonDays:   horizon,
		Loading: dto.LoadingFlags{
			ForecastLoading: uc.forecastLoading.Load(),
			OrderProcessing: uc.orderProcessing.Load(),
			SummaryLoading:  uc.summaryLoading.Load(),
		},
	}
}

// GenerateForecasts runs the read-only forecast stage for the current
// selection. On success the selected ids are captured and become the
// authoritative set for order generation; on failure the stage and selection
// are left intact so the operator can retry without re-selecting.
func (uc *workflowUseCase) GenerateForecasts(ctx context.Context) error {
	uc.mu.Lock()
	if uc.stage != model.StageSelecting {
		uc.mu.Unlock()
		return replenishment.ErrWrongStage
	}
	if uc.selection.Size() == 0 {
		uc.mu.Unlock()
		return replenishment.ErrEmptySelection
	}
	if !uc.forecastLoading.CAS(false, true) {
		uc.mu.Unlock()
		return replenishment.ErrStageBusy
	}
	req := model.PipelineRequest{
		AlertIDs:    uc.selection.IDs(),
		HorizonDays: uc.horizon,
	}
	token := uc.runToken
	uc.mu.Unlock()
	defer uc.forecastLoading.Store(false)

	bundles, err := uc.repo.GenerateForecasts(ctx, req)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if token != uc.runToken {
		uc.logger.Warn("discarding forecast response from a superseded run")
		return replenishment.ErrRunSuperseded
	}
	if err != nil {
		uc.logger.Error("forecast generation failed",
			zap.Int("alerts", len(req.AlertIDs)),
			zap.Error(err),
		)
		return err
	}

	uc.capturedIDs = req.AlertIDs
	uc.capturedHorizon = req.HorizonDays
	uc.forecasts = bundles
	uc.stage = model.StageReviewingForecasts

	uc.logger.Info("forecasts ready for review",
		zap.Int("alerts", len(req.AlertIDs)),
		zap.Int("suppliers", len(bundles)),
	)
	return nil
}

func (uc *workflowUseCase) Forecasts() []model.SupplierForecast {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]model.SupplierForecast, len(uc.forecasts))
	copy(out, uc.forecasts)
	return out
}

// GenerateOrders commits the run: it reuses the id set captured at forecast
// time, not the live selection, so what the operator reviewed is exactly what
// gets ordered. The stage advances on any completed batch, partial failures
// included; only a transport or server error keeps the run in review.
func (uc *workflowUseCase) GenerateOrders(ctx context.Context, operatorID *int64, notes string) error {
	uc.mu.Lock()
	if uc.stage != model.StageReviewingForecasts {
		uc.mu.Unlock()
		return replenishment.ErrWrongStage
	}
	if !uc.orderProcessing.CAS(false, true) {
		uc.mu.Unlock()
		return replenishment.ErrStageBusy
	}
	req := model.PipelineRequest{
		AlertIDs:    append([]int64(nil), uc.capturedIDs...),
		HorizonDays: uc.capturedHorizon,
		OperatorID:  operatorID,
		Notes:       notes,
	}
	token := uc.runToken
	uc.mu.Unlock()
	defer uc.orderProcessing.Store(false)

	result, err := uc.repo.GenerateOrders(ctx, req)

	uc.mu.Lock()
	if token != uc.runToken {
		uc.mu.Unlock()
		uc.logger.Warn("discarding order batch response from a superseded run")
		return replenishment.ErrRunSuperseded
	}
	if err != nil {
		uc.mu.Unlock()
		uc.logger.Error("order generation failed",
			zap.Int("alerts", len(req.AlertIDs)),
			zap.Error(err),
		)
		return err
	}

	summary := Interpret(result)
	uc.result = result
	uc.resultView = &dto.ResultView{Summary: summary}
	uc.stage = model.StageOrdersGenerated
	uc.mu.Unlock()

	uc.logger.Info("order batch completed",
		zap.String("outcome", string(summary.Outcome)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Int("orders", len(result.PurchaseOrderIDs)),
	)

	// Dependent fetch: strictly after the batch resolved, and only when it
	// produced at least one order.
	if len(result.PurchaseOrderIDs) > 0 {
		uc.loadOrderSummaries(ctx, token, result.PurchaseOrderIDs)
	}
	return nil
}

func (uc *workflowUseCase) loadOrderSummaries(ctx context.Context, token uint64, orderIDs []int64) {
	uc.summaryLoading.Store(true)
	defer uc.summaryLoading.Store(false)

	orders, err := uc.repo.FetchOrderSummaries(ctx, orderIDs)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if token != uc.runToken || uc.resultView == nil {
		return
	}
	if err != nil {
		// The orders exist; failing to load their summaries must not bury the
		// batch outcome.
		uc.logger.Warn("order summary fetch failed", zap.Error(err))
		uc.resultView.Notice = "Las órdenes se generaron pero no se pudo cargar su resumen"
		return
	}
	uc.resultView.Orders = orders
}

func (uc *workflowUseCase) Result() (*dto.ResultView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.resultView == nil {
		return nil, replenishment.ErrNoResult
	}
	view := *uc.resultView
	return &view, nil
}

// Reset starts a fresh run. Any response still in flight for the old run is
// discarded by the token bump when it eventually lands.
func (uc *workflowUseCase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.stage = model.StageSelecting
	uc.selection.Clear()
	uc.capturedIDs = nil
	uc.capturedHorizon = 0
	uc.forecasts = nil
	uc.result = nil
	uc.resultView = nil
	uc.runToken++
}

package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-replenishment-service/internal/alert"
	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"
	"go.uber.org/zap"
)

type alertUseCase struct {
	repo   alert.Repository
	logger logger.ZapLogger

	mu        sync.RWMutex
	alerts    []model.Alert
	observers []func(alerts []model.Alert)
}

func NewAlertUseCase(repo alert.Repository, log logger.ZapLogger) alert.UseCase {
	return &alertUseCase{
		repo:   repo,
		logger: log,
	}
}

// Refresh replaces the whole snapshot with the platform's current view.
// The store is never patched incrementally: server-side effects such as
// auto-escalation only become visible through a full re-fetch.
func (uc *alertUseCase) Refresh(ctx context.Context) error {
	fetched, err := uc.repo.FetchPending(ctx)
	if err != nil {
		return err
	}

	// Defensive filter: the dashboard should only return active alerts, but a
	// terminal alert slipping through must never re-enter the selection pool.
	active := make([]model.Alert, 0, len(fetched))
	for _, a := range fetched {
		if a.Status.Terminal() {
			continue
		}
		active = append(active, a)
	}

	uc.mu.Lock()
	uc.alerts = active
	observers := make([]func([]model.Alert), len(uc.observers))
	copy(observers, uc.observers)
	snapshot := uc.snapshotLocked()
	uc.mu.Unlock()

	uc.logger.Debug("alert store refreshed",
		zap.Int("fetched", len(fetched)),
		zap.Int("active", len(active)),
	)

	for _, fn := range observers {
		fn(snapshot)
	}
	return nil
}

func (uc *alertUseCase) Alerts() []model.Alert {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshotLocked()
}

func (uc *alertUseCase) Groups() []model.SupplierGroup {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return GroupBySupplier(uc.alerts)
}

func (uc *alertUseCase) Count() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.alerts)
}

func (uc *alertUseCase) Subscribe(fn func(alerts []model.Alert)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.observers = append(uc.observers, fn)
}

func (uc *alertUseCase) snapshotLocked() []model.Alert {
	out := make([]model.Alert, len(uc.alerts))
	copy(out, uc.alerts)
	return out
}

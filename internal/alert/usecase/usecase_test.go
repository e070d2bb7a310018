package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"
)

type fakeAlertRepo struct {
	alerts []model.Alert
	err    error
	calls  int
}

func (f *fakeAlertRepo) FetchPending(ctx context.Context) ([]model.Alert, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Alert, len(f.alerts))
	copy(out, f.alerts)
	return out, nil
}

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	repo := &fakeAlertRepo{alerts: []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, ptrF64(10), "2.50"),
		testAlert(2, ptrI64(7), "Globex", model.CriticalityLow, nil, "1.00"),
	}}
	uc := NewAlertUseCase(repo, logger.NewNop())

	if err := uc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if got := uc.Count(); got != 2 {
		t.Fatalf("expected 2 alerts after first refresh, got %d", got)
	}

	// A later refresh replaces the snapshot wholesale, it never merges.
	repo.alerts = []model.Alert{
		testAlert(3, ptrI64(4), "Acme", model.CriticalityCritical, ptrF64(1), "2.50"),
	}
	if err := uc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	alerts := uc.Alerts()
	if len(alerts) != 1 || alerts[0].ID != 3 {
		t.Fatalf("expected snapshot to be replaced, got %v", alerts)
	}
}

func TestRefresh_FiltersTerminalAlerts(t *testing.T) {
	resolved := testAlert(2, ptrI64(4), "Acme", model.CriticalityLow, nil, "1.00")
	resolved.Status = model.AlertStatusResolved
	ignored := testAlert(3, ptrI64(4), "Acme", model.CriticalityLow, nil, "1.00")
	ignored.Status = model.AlertStatusIgnored
	escalated := testAlert(4, ptrI64(4), "Acme", model.CriticalityHigh, nil, "1.00")
	escalated.Status = model.AlertStatusEscalated

	repo := &fakeAlertRepo{alerts: []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, nil, "1.00"),
		resolved,
		ignored,
		escalated,
	}}
	uc := NewAlertUseCase(repo, logger.NewNop())

	if err := uc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	alerts := uc.Alerts()
	if len(alerts) != 2 {
		t.Fatalf("expected terminal alerts filtered, got %d alerts", len(alerts))
	}
	for _, a := range alerts {
		if a.Status.Terminal() {
			t.Fatalf("terminal alert %d survived refresh", a.ID)
		}
	}
}

func TestRefresh_ErrorKeepsOldSnapshot(t *testing.T) {
	repo := &fakeAlertRepo{alerts: []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, nil, "1.00"),
	}}
	uc := NewAlertUseCase(repo, logger.NewNop())
	if err := uc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	repo.err = errors.New("platform down")
	if err := uc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := uc.Count(); got != 1 {
		t.Fatalf("failed refresh must keep the previous snapshot, got %d alerts", got)
	}
}

func TestSubscribe_NotifiedAfterEachRefresh(t *testing.T) {
	repo := &fakeAlertRepo{alerts: []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, nil, "1.00"),
	}}
	uc := NewAlertUseCase(repo, logger.NewNop())

	var notified [][]model.Alert
	uc.Subscribe(func(alerts []model.Alert) {
		notified = append(notified, alerts)
	})

	if err := uc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if len(notified) != 1 || len(notified[0]) != 1 || notified[0][0].ID != 1 {
		t.Fatalf("observer not notified with fresh snapshot: %v", notified)
	}

	repo.err = errors.New("down")
	_ = uc.Refresh(context.Background())
	if len(notified) != 1 {
		t.Fatal("observer must not fire on failed refresh")
	}
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment/dto"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"
)

// stubWorkflow satisfies replenishment.UseCase; the registry never looks
// inside it.
type stubWorkflow struct{}

func (stubWorkflow) RefreshAlerts(ctx context.Context) error { return nil }
func (stubWorkflow) Groups() []dto.GroupView { return nil }
func (stubWorkflow) AlertCount() int { return 0 }
func (stubWorkflow) Toggle(alertID int64, included bool) {}
func (stubWorkflow) ToggleForSupplier(supplierID int64, inc bool) {}
func (stubWorkflow) ClearSelection() {}
func (stubWorkflow) SelectionSize() int { return 0 }
func (stubWorkflow) SelectedIDs() []int64 { return nil }
func (stubWorkflow) SetHorizon(days int) error { return nil }
func (stubWorkflow) Horizon() int { return 30 }
func (stubWorkflow) Stage() model.Stage { return model.StageSelecting }
func (stubWorkflow) State() dto.SessionState { return dto.SessionState{} }
func (stubWorkflow) GenerateForecasts(ctx context.Context) error { return nil }
func (stubWorkflow) Forecasts() []model.SupplierForecast { return nil }
func (stubWorkflow) Result() (*dto.ResultView, error) { return nil, replenishment.ErrNoResult }
func (stubWorkflow) Reset() {}
func (stubWorkflow) GenerateOrders(ctx context.Context, operatorID *int64, notes string) error {
	return nil
}

func newTestRegistry(ttl time.Duration) *Registry {
	return NewRegistry(func() replenishment.UseCase { return stubWorkflow{} }, ttl, logger.NewNop())
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r := newTestRegistry(time.Hour)

	id, created := r.Create()
	if id == "" || created == nil {
		t.Fatal("Create returned an empty session")
	}

	got, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get(%s) error: %v", id, err)
	}
	if got == nil {
		t.Fatal("Get returned nil workflow")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", r.Len())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := newTestRegistry(time.Hour)
	if _, err := r.Get("nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistry_Delete(t *testing.T) {
	r := newTestRegistry(time.Hour)
	id, _ := r.Create()
	r.Delete(id)
	if _, err := r.Get(id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting twice is harmless.
	r.Delete(id)
}

func TestRegistry_EvictIdle(t *testing.T) {
	r := newTestRegistry(10 * time.Minute)
	id1, _ := r.Create()
	id2, _ := r.Create()

	// Touch id2 only; pretend half an hour passes.
	if _, err := r.Get(id2); err != nil {
		t.Fatalf("Get(%s) error: %v", id2, err)
	}
	r.mu.Lock()
	r.sessions[id1].lastSeen = time.Now().Add(-30 * time.Minute)
	r.mu.Unlock()

	if evicted := r.evictIdle(time.Now()); evicted != 1 {
		t.Fatalf("expected 1 eviction, got %d", evicted)
	}
	if _, err := r.Get(id1); err != ErrNotFound {
		t.Fatal("idle session should be gone")
	}
	if _, err := r.Get(id2); err != nil {
		t.Fatalf("active session evicted: %v", err)
	}
}

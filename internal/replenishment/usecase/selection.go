package usecase

import (
	"sort"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
)

// selectionTracker is the mutable set of selected alert ids. Its lifecycle is
// independent of the alert store: ids pointing at alerts that disappeared on
// refresh are inert until pruned. No operation here touches the network.
type selectionTracker struct {
	ids map[int64]struct{}
}

func newSelectionTracker() *selectionTracker {
	return &selectionTracker{ids: make(map[int64]struct{})}
}

// Toggle adds or removes one id. Idempotent; removing an absent id is a no-op.
func (s *selectionTracker) Toggle(alertID int64, included bool) {
	if included {
		s.ids[alertID] = struct{}{}
		return
	}
	delete(s.ids, alertID)
}

// ToggleGroup applies Toggle to every alert in the group. The individual
// toggles are idempotent and order-independent, so no atomicity is needed.
func (s *selectionTracker) ToggleGroup(group model.SupplierGroup, included bool) {
	for _, a := range group.Alerts {
		s.Toggle(a.ID, included)
	}
}

func (s *selectionTracker) Clear() {
	s.ids = make(map[int64]struct{})
}

func (s *selectionTracker) Size() int {
	return len(s.ids)
}

func (s *selectionTracker) Has(alertID int64) bool {
	_, ok := s.ids[alertID]
	return ok
}

// IDs returns a sorted copy of the selection.
func (s *selectionTracker) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Prune drops ids that no longer exist in the given alert snapshot.
func (s *selectionTracker) Prune(alerts []model.Alert) {
	alive := make(map[int64]struct{}, len(alerts))
	for _, a := range alerts {
		alive[a.ID] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := alive[id]; !ok {
			delete(s.ids, id)
		}
	}
}

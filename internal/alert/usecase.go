package alert

import (
	"context"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
)

// UseCase is the alert store: the single shared source of truth for alert
// lifecycle state within a workflow session. It is refreshed only by
// re-querying the platform, never patched locally from partial results.
type UseCase interface {
	Refresh(ctx context.Context) error
	Alerts() []model.Alert
	Groups() []model.SupplierGroup
	Count() int

	// Subscribe registers an observer invoked synchronously after every
	// successful Refresh with the fresh snapshot.
	Subscribe(fn func(alerts []model.Alert))
}

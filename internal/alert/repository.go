package alert

import (
	"context"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
)

// Repository reads alerts from the platform's dashboard endpoint.
type Repository interface {
	FetchPending(ctx context.Context) ([]model.Alert, error)
}

package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/pkg/errors"
)

const dashboardPath = "/api/alertas/dashboard"

// HTTPRepository talks to the platform's alert endpoints.
type HTTPRepository struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPRepository(baseURL, token string, client *http.Client) *HTTPRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRepository{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

func (r *HTTPRepository) FetchPending(ctx context.Context) ([]model.Alert, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+dashboardPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build dashboard request")
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch alert dashboard")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("alert dashboard returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Alerts []model.Alert `json:"alertas"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "decode alert dashboard from %s", dashboardPath)
	}
	return payload.Alerts, nil
}

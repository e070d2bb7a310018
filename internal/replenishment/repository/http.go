package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/pkg/errors"
)

// Platform pipeline endpoints. Field names on the wire follow the platform
// contract (Spanish), mapped to the English domain models here.
const (
	forecastBatchPath = "/api/pronosticos/batch"
	orderBatchPath    = "/api/ordenes/generar-batch"
	orderSummaryPath  = "/api/ordenes/resumen"
)

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

type forecastBatchRequest struct {
	AlertIDs    []int64 `json:"alertIds"`
	HorizonDays int     `json:"horizonteTiempo"`
}

type forecastBundleWire struct {
	SupplierName string                `json:"proveedorNombre"`
	Products     []productForecastWire `json:"pronosticos"`
}

type productForecastWire struct {
	AlertID             int64                 `json:"alertaId"`
	ProductID           int64                 `json:"productoId"`
	ProductName         string                `json:"productoNombre"`
	Historical          []model.ForecastPoint `json:"serieHistorica"`
	Predicted           []model.ForecastPoint `json:"seriePredicha"`
	Metrics             model.ForecastMetrics `json:"metricas"`
	RecommendedQuantity float64               `json:"cantidadRecomendada"`
}

func (r *HTTPRepository) GenerateForecasts(ctx context.Context, req model.PipelineRequest) ([]model.SupplierForecast, error) {
	payload := forecastBatchRequest{
		AlertIDs:    req.AlertIDs,
		HorizonDays: req.HorizonDays,
	}

	// The platform keys the response map by supplier id.
	var wire map[string]forecastBundleWire
	if err := r.post(ctx, forecastBatchPath, payload, &wire); err != nil {
		return nil, err
	}

	bundles := make([]model.SupplierForecast, 0, len(wire))
	for key, b := range wire {
		supplierID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "forecast batch: bad supplier key %q", key)
		}
		products := make([]model.ProductForecast, 0, len(b.Products))
		for _, p := range b.Products {
			products = append(products, model.ProductForecast(p))
		}
		bundles = append(bundles, model.SupplierForecast{
			SupplierID:   supplierID,
			SupplierName: b.SupplierName,
			Products:     products,
		})
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].SupplierID < bundles[j].SupplierID })
	return bundles, nil
}

type orderBatchRequest struct {
	AlertIDs    []int64 `json:"alertIds"`
	HorizonDays int     `json:"horizonteTiempo"`
	OperatorID  *int64  `json:"usuarioId,omitempty"`
	Notes       string  `json:"observaciones,omitempty"`
}

type batchResultWire struct {
	StartedAt         time.Time `json:"fechaInicio"`
	CompletedAt       time.Time `json:"fechaFin"`
	ElapsedMillis     int64     `json:"duracionMs"`
	TotalProcessed    int       `json:"totalProcesadas"`
	Succeeded         int       `json:"exitosos"`
	Failed            int       `json:"fallidos"`
	Success           bool      `json:"exitoTotal"`
	SucceededAlertIDs []int64   `json:"alertasExitosas"`
	FailedAlertIDs    []int64   `json:"alertasFallidas"`
	FailureMessages   []string  `json:"mensajesError"`
	ForecastIDs       []int64   `json:"pronosticosGenerados"`
	OptimizationIDs   []int64   `json:"optimizacionesGeneradas"`
	PurchaseOrderIDs  []int64   `json:"ordenesGeneradas"`
}

func (r *HTTPRepository) GenerateOrders(ctx context.Context, req model.PipelineRequest) (*model.BatchResult, error) {
	payload := orderBatchRequest{
		AlertIDs:    req.AlertIDs,
		HorizonDays: req.HorizonDays,
		OperatorID:  req.OperatorID,
		Notes:       req.Notes,
	}

	var wire batchResultWire
	if err := r.post(ctx, orderBatchPath, payload, &wire); err != nil {
		return nil, err
	}

	return &model.BatchResult{
		StartedAt:         wire.StartedAt,
		CompletedAt:       wire.CompletedAt,
		Elapsed:           time.Duration(wire.ElapsedMillis) * time.Millisecond,
		TotalProcessed:    wire.TotalProcessed,
		Succeeded:         wire.Succeeded,
		Failed:            wire.Failed,
		SucceededAlertIDs: wire.SucceededAlertIDs,
		FailedAlertIDs:    wire.FailedAlertIDs,
		FailureMessages:   wire.FailureMessages,
		ForecastIDs:       wire.ForecastIDs,
		OptimizationIDs:   wire.OptimizationIDs,
		PurchaseOrderIDs:  wire.PurchaseOrderIDs,
	}, nil
}

type orderSummaryRequest struct {
	OrderIDs []int64 `json:"ordenIds"`
}

func (r *HTTPRepository) FetchOrderSummaries(ctx context.Context, orderIDs []int64) ([]model.OrderSummary, error) {
	var payload struct {
		Orders []model.OrderSummary `json:"ordenes"`
	}
	if err := r.post(ctx, orderSummaryPath, orderSummaryRequest{OrderIDs: orderIDs}, &payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

func (r *HTTPRepository) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "encode request for %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "call %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("%s returned %d: %s", path, resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode response from %s", path)
	}
	return nil
}

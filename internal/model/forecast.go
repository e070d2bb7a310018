package model

import "time"

// SupplierForecast bundles the per-product forecasts the platform returns for
// one supplier. Bundles are what the operator reviews before committing to
// order generation.
type SupplierForecast struct {
	SupplierID   int64             `json:"proveedorId"`
	SupplierName string            `json:"proveedorNombre"`
	Products     []ProductForecast `json:"pronosticos"`
}

type ProductForecast struct {
	AlertID             int64           `json:"alertaId"`
	ProductID           int64           `json:"productoId"`
	ProductName         string          `json:"productoNombre"`
	Historical          []ForecastPoint `json:"serieHistorica"`
	Predicted           []ForecastPoint `json:"seriePredicha"`
	Metrics             ForecastMetrics `json:"metricas"`
	RecommendedQuantity float64         `json:"cantidadRecomendada"`
}

type ForecastPoint struct {
	Date     time.Time `json:"fecha"`
	Quantity float64   `json:"cantidad"`
}

// ForecastMetrics carries the quality measures the platform computes for each
// product series.
type ForecastMetrics struct {
	MAPE           float64 `json:"mape"`
	RMSE           float64 `json:"rmse"`
	HasTrend       bool    `json:"tieneTendencia"`
	HasSeasonality bool    `json:"tieneEstacionalidad"`
}

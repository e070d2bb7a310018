package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PipelineRequest captures the inputs of one forecast-and-order run. It is
// built fresh from the current selection when forecasts are requested and is
// never mutated afterwards: the ids the operator reviewed are exactly the ids
// that get ordered.
type PipelineRequest struct {
	AlertIDs    []int64
	HorizonDays int
	OperatorID  *int64
	Notes       string
}

// BatchResult is the platform's terminal answer for one order-generation run.
// Created once per run, immutable thereafter.
//
// FailureMessages are free-form diagnostics. The platform contract does not
// guarantee positional alignment with FailedAlertIDs, so they are treated as
// an unordered list.
type BatchResult struct {
	StartedAt         time.Time
	CompletedAt       time.Time
	Elapsed           time.Duration
	TotalProcessed    int
	Succeeded         int
	Failed            int
	SucceededAlertIDs []int64
	FailedAlertIDs    []int64
	FailureMessages   []string
	ForecastIDs       []int64
	OptimizationIDs   []int64
	PurchaseOrderIDs  []int64
}

// Success reports total success: every selected alert produced an order.
func (r *BatchResult) Success() bool {
	return r.Failed == 0
}

// BatchOutcome is the exhaustive classification of a completed run. Partial
// success is a normal terminal outcome, not an error.
type BatchOutcome string

const (
	OutcomeTotalSuccess   BatchOutcome = "EXITO_TOTAL"
	OutcomePartialSuccess BatchOutcome = "EXITO_PARCIAL"
	OutcomeTotalFailure   BatchOutcome = "FALLO_TOTAL"
)

// Classify maps a result onto its outcome variant.
func (r *BatchResult) Classify() BatchOutcome {
	switch {
	case r.Succeeded == 0:
		return OutcomeTotalFailure
	case r.Failed == 0:
		return OutcomeTotalSuccess
	default:
		return OutcomePartialSuccess
	}
}

// OrderSummary is the display projection of a generated purchase order,
// fetched as a dependent operation after a batch completes.
type OrderSummary struct {
	OrderID      int64           `json:"ordenId"`
	OrderNumber  string          `json:"numeroOrden"`
	SupplierID   int64           `json:"proveedorId"`
	SupplierName string          `json:"proveedorNombre"`
	LineCount    int             `json:"totalLineas"`
	Total        decimal.Decimal `json:"montoTotal"`
	Lines        []OrderLine     `json:"lineas"`
}

type OrderLine struct {
	ProductID   int64           `json:"productoId"`
	ProductName string          `json:"productoNombre"`
	SKU         string          `json:"sku"`
	Quantity    float64         `json:"cantidad"`
	UnitCost    decimal.Decimal `json:"costoUnitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Stage is the replenishment workflow's position. Forward-only within a run;
// Reset starts a new run rather than stepping backwards.
type Stage int

const (
	StageSelecting Stage = iota
	StageReviewingForecasts
	StageOrdersGenerated
)

func (s Stage) String() string {
	switch s {
	case StageSelecting:
		return "SELECTING"
	case StageReviewingForecasts:
		return "REVIEWING_FORECASTS"
	case StageOrdersGenerated:
		return "ORDERS_GENERATED"
	default:
		return "UNKNOWN"
	}
}

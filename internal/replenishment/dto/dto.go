package dto

import (
	"github.com/fekuna/omnipos-replenishment-service/internal/model"
)

// LoadingFlags mirror the per-stage spinners the admin UI keys on.
type LoadingFlags struct {
	ForecastLoading bool `json:"cargando"`
	OrderProcessing bool `json:"procesando"`
	SummaryLoading  bool `json:"cargandoOrdenes"`
}

// SessionState is the workflow snapshot the UI polls between actions.
type SessionState struct {
	SessionID     string       `json:"sessionId,omitempty"`
	StageIndex    int          `json:"pasoActual"`
	StageName     string       `json:"etapa"`
	AlertCount    int          `json:"totalAlertas"`
	SelectionSize int          `json:"totalSeleccionadas"`
	HorizonDays   int          `json:"horizonteTiempo"`
	Loading       LoadingFlags `json:"cargas"`
}

// GroupView decorates a derived supplier group with this session's selection
// marks.
type GroupView struct {
	model.SupplierGroup
	SelectedCount int     `json:"seleccionadas"`
	SelectedIDs   []int64 `json:"alertasSeleccionadas"`
}

// BatchSummary is the reconciled, human-facing reading of a BatchResult.
type BatchSummary struct {
	Outcome          model.BatchOutcome `json:"resultado"`
	Message          string             `json:"mensaje"`
	TotalProcessed   int                `json:"totalProcesadas"`
	Succeeded        int                `json:"exitosos"`
	Failed           int                `json:"fallidos"`
	ElapsedMillis    int64              `json:"duracionMs"`
	FailureMessages  []string           `json:"mensajesError"`
	ForecastIDs      []int64            `json:"pronosticosGenerados"`
	OptimizationIDs  []int64            `json:"optimizacionesGeneradas"`
	PurchaseOrderIDs []int64            `json:"ordenesGeneradas"`
}

// ResultView is what the results screen renders: the reconciled summary plus
// the dependent order summaries once they are fetched. Notice carries a
// non-fatal warning when the summary fetch itself failed.
type ResultView struct {
	Summary BatchSummary         `json:"resumen"`
	Orders  []model.OrderSummary `json:"ordenes"`
	Notice  string               `json:"aviso,omitempty"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JSON tags on the alert structures follow the platform API contract, which
// the admin UI consumes as-is (Spanish field names).

type AlertType string

const (
	AlertTypeLowStock        AlertType = "LOW_STOCK"
	AlertTypeReorderPoint    AlertType = "REORDER_POINT"
	AlertTypeCriticalStock   AlertType = "CRITICAL_STOCK"
	AlertTypeOverstock       AlertType = "OVERSTOCK"
	AlertTypeObsolete        AlertType = "OBSOLETE"
	AlertTypeExpiryNear      AlertType = "EXPIRY_NEAR"
	AlertTypeExpiryPast      AlertType = "EXPIRY_PAST"
	AlertTypeAnomalousDemand AlertType = "ANOMALOUS_DEMAND"
	AlertTypeHighCost        AlertType = "HIGH_COST"
	AlertTypeHighShrinkage   AlertType = "HIGH_SHRINKAGE"
	AlertTypeSupplierDelay   AlertType = "SUPPLIER_DELAY"
)

// Criticality is an ordered severity scale. Compare via Rank, not string order.
type Criticality string

const (
	CriticalityLow      Criticality = "LOW"
	CriticalityMedium   Criticality = "MEDIUM"
	CriticalityHigh     Criticality = "HIGH"
	CriticalityCritical Criticality = "CRITICAL"
)

func (c Criticality) Rank() int {
	switch c {
	case CriticalityLow:
		return 0
	case CriticalityMedium:
		return 1
	case CriticalityHigh:
		return 2
	case CriticalityCritical:
		return 3
	default:
		return -1
	}
}

type AlertStatus string

const (
	AlertStatusPending   AlertStatus = "PENDING"
	AlertStatusInProcess AlertStatus = "IN_PROCESS"
	AlertStatusResolved  AlertStatus = "RESOLVED"
	AlertStatusIgnored   AlertStatus = "IGNORED"
	AlertStatusEscalated AlertStatus = "ESCALATED"
)

// Terminal reports whether the alert left the active pool. Terminal alerts
// never participate in selection after the next refresh.
func (s AlertStatus) Terminal() bool {
	return s == AlertStatusResolved || s == AlertStatusIgnored
}

// ProductRef is the product snapshot denormalized into each alert by the
// platform dashboard endpoint. SupplierID is nil for products without an
// assigned supplier; such alerts are excluded from supplier grouping.
type ProductRef struct {
	ID              int64           `json:"id"`
	Name            string          `json:"nombre"`
	SKU             string          `json:"sku"`
	AcquisitionCost decimal.Decimal `json:"costoAdquisicion"`
	SupplierID      *int64          `json:"proveedorId,omitempty"`
	SupplierName    *string         `json:"proveedorNombre,omitempty"`
}

type Alert struct {
	ID                int64       `json:"id"`
	Type              AlertType   `json:"tipo"`
	Criticality       Criticality `json:"criticidad"`
	Message           string      `json:"mensaje"`
	Product           ProductRef  `json:"producto"`
	CurrentStock      *float64    `json:"stockActual,omitempty"`
	MinimumStock      *float64    `json:"stockMinimo,omitempty"`
	SuggestedQuantity *float64    `json:"cantidadSugerida,omitempty"`
	AssignedUserID    *int64      `json:"usuarioAsignadoId,omitempty"`
	Status            AlertStatus `json:"estado"`
	GeneratedAt       time.Time   `json:"fechaGeneracion"`
	ResolvedAt        *time.Time  `json:"fechaResolucion,omitempty"`
	ActionTaken       *string     `json:"accionTomada,omitempty"`
}

// SupplierGroup is a derived, read-only view over a set of alerts sharing a
// supplier. It is rebuilt from scratch on every store refresh, never patched.
type SupplierGroup struct {
	SupplierID             int64               `json:"proveedorId"`
	SupplierName           string              `json:"proveedorNombre"`
	Alerts                 []Alert             `json:"alertas"`
	AlertCount             int                 `json:"totalAlertas"`
	TotalSuggestedQuantity float64             `json:"cantidadTotalSugerida"`
	CountByCriticality     map[Criticality]int `json:"conteoPorCriticidad"`
	EstimatedOrderValue    decimal.Decimal     `json:"valorEstimado"`
}

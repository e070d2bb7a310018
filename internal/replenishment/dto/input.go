package dto

// Selection actions accepted by the selection endpoint.
const (
	SelectionActionToggle   = "toggle"
	SelectionActionSupplier = "supplier"
	SelectionActionClear    = "clear"
)

type SelectionInput struct {
	Action     string `json:"action" binding:"required,oneof=toggle supplier clear"`
	AlertID    *int64 `json:"alertId" binding:"required_if=Action toggle"`
	SupplierID *int64 `json:"supplierId" binding:"required_if=Action supplier"`
	Included   *bool  `json:"included" binding:"required_unless=Action clear"`
}

type HorizonInput struct {
	HorizonDays int `json:"horizonteTiempo" binding:"required,gt=0"`
}

type GenerateOrdersInput struct {
	Notes string `json:"observaciones" binding:"max=500"`
}

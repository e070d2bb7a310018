package usecase

import (
	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/shopspring/decimal"
)

// GroupBySupplier derives supplier groups from an alert snapshot in a single
// pass. Groups appear in first-seen supplier order and alerts keep their
// snapshot order within a group.
//
// Alerts whose product has no supplier are excluded from every group. That is
// a deliberate data-quality decision, not an error: such alerts cannot be
// replenished through a purchase order anyway.
func GroupBySupplier(alerts []model.Alert) []model.SupplierGroup {
	index := make(map[int64]int, len(alerts))
	groups := make([]model.SupplierGroup, 0, len(alerts))

	for _, a := range alerts {
		supplierID := a.Product.SupplierID
		if supplierID == nil {
			continue
		}

		pos, ok := index[*supplierID]
		if !ok {
			name := ""
			if a.Product.SupplierName != nil {
				name = *a.Product.SupplierName
			}
			groups = append(groups, model.SupplierGroup{
				SupplierID:          *supplierID,
				SupplierName:        name,
				CountByCriticality:  make(map[model.Criticality]int),
				EstimatedOrderValue: decimal.Zero,
			})
			pos = len(groups) - 1
			index[*supplierID] = pos
		}

		g := &groups[pos]
		g.Alerts = append(g.Alerts, a)
		g.AlertCount++
		g.CountByCriticality[a.Criticality]++
		if a.SuggestedQuantity != nil {
			qty := *a.SuggestedQuantity
			g.TotalSuggestedQuantity += qty
			g.EstimatedOrderValue = g.EstimatedOrderValue.Add(
				a.Product.AcquisitionCost.Mul(decimal.NewFromFloat(qty)))
		}
	}

	return groups
}

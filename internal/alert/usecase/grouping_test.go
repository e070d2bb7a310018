package usecase

import (
	"testing"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/shopspring/decimal"
)

func ptrI64(v int64) *int64 { return &v }

func ptrStr(v string) *string { return &v }

func ptrF64(v float64) *float64 { return &v }

func testAlert(id int64, supplierID *int64, supplierName string, crit model.Criticality, qty *float64, cost string) model.Alert {
	var name *string
	if supplierID != nil {
		name = ptrStr(supplierName)
	}
	return model.Alert{
		ID:          id,
		Type:        model.AlertTypeLowStock,
		Criticality: crit,
		Status:      model.AlertStatusPending,
		Product: model.ProductRef{
			ID:              id * 100,
			Name:            "product",
			SKU:             "SKU",
			AcquisitionCost: decimal.RequireFromString(cost),
			SupplierID:      supplierID,
			SupplierName:    name,
		},
		SuggestedQuantity: qty,
	}
}

func TestGroupBySupplier_UnionEqualsSupplierBearingAlerts(t *testing.T) {
	alerts := []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, ptrF64(10), "2.50"),
		testAlert(2, nil, "", model.CriticalityCritical, ptrF64(5), "1.00"),
		testAlert(3, ptrI64(7), "Globex", model.CriticalityLow, nil, "3.00"),
		testAlert(4, ptrI64(4), "Acme", model.CriticalityHigh, ptrF64(4), "2.50"),
	}

	groups := GroupBySupplier(alerts)

	seen := map[int64]bool{}
	for _, g := range groups {
		for _, a := range g.Alerts {
			if seen[a.ID] {
				t.Fatalf("alert %d appears in more than one group", a.ID)
			}
			seen[a.ID] = true
			if a.Product.SupplierID == nil {
				t.Fatalf("alert %d has no supplier but was grouped", a.ID)
			}
		}
	}
	for _, a := range alerts {
		grouped := seen[a.ID]
		if a.Product.SupplierID == nil && grouped {
			t.Fatalf("supplier-less alert %d should appear in zero groups", a.ID)
		}
		if a.Product.SupplierID != nil && !grouped {
			t.Fatalf("alert %d has a supplier but was not grouped", a.ID)
		}
	}
}

func TestGroupBySupplier_FirstSeenOrderAndAggregates(t *testing.T) {
	alerts := []model.Alert{
		testAlert(1, ptrI64(7), "Globex", model.CriticalityLow, ptrF64(3), "4.00"),
		testAlert(2, ptrI64(4), "Acme", model.CriticalityHigh, ptrF64(10), "2.50"),
		testAlert(3, ptrI64(7), "Globex", model.CriticalityCritical, ptrF64(2), "6.00"),
	}

	groups := GroupBySupplier(alerts)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].SupplierID != 7 || groups[1].SupplierID != 4 {
		t.Fatalf("groups not in first-seen order: %d, %d", groups[0].SupplierID, groups[1].SupplierID)
	}

	g := groups[0]
	if g.SupplierName != "Globex" {
		t.Fatalf("expected supplier name Globex, got %q", g.SupplierName)
	}
	if g.AlertCount != 2 {
		t.Fatalf("expected 2 alerts for Globex, got %d", g.AlertCount)
	}
	if g.Alerts[0].ID != 1 || g.Alerts[1].ID != 3 {
		t.Fatalf("in-group order not preserved: %d, %d", g.Alerts[0].ID, g.Alerts[1].ID)
	}
	if g.TotalSuggestedQuantity != 5 {
		t.Fatalf("expected total quantity 5, got %v", g.TotalSuggestedQuantity)
	}
	if g.CountByCriticality[model.CriticalityLow] != 1 || g.CountByCriticality[model.CriticalityCritical] != 1 {
		t.Fatalf("wrong criticality counts: %v", g.CountByCriticality)
	}
	// 3*4.00 + 2*6.00 = 24
	if !g.EstimatedOrderValue.Equal(decimal.RequireFromString("24")) {
		t.Fatalf("expected estimated value 24, got %s", g.EstimatedOrderValue)
	}
}

func TestGroupBySupplier_MissingQuantityDoesNotCount(t *testing.T) {
	alerts := []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, nil, "2.50"),
	}
	groups := GroupBySupplier(alerts)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].TotalSuggestedQuantity != 0 {
		t.Fatalf("expected zero quantity, got %v", groups[0].TotalSuggestedQuantity)
	}
	if !groups[0].EstimatedOrderValue.IsZero() {
		t.Fatalf("expected zero estimated value, got %s", groups[0].EstimatedOrderValue)
	}
}

func TestGroupBySupplier_PureRebuild(t *testing.T) {
	alerts := []model.Alert{
		testAlert(1, ptrI64(4), "Acme", model.CriticalityHigh, ptrF64(10), "2.50"),
		testAlert(2, nil, "", model.CriticalityLow, nil, "1.00"),
	}

	first := GroupBySupplier(alerts)
	second := GroupBySupplier(alerts)

	if len(first) != len(second) {
		t.Fatalf("grouping is not deterministic: %d vs %d groups", len(first), len(second))
	}
	if alerts[0].ID != 1 || alerts[1].ID != 2 {
		t.Fatal("input slice was mutated")
	}
	// Appending to one result must not leak into the other.
	first[0].Alerts = append(first[0].Alerts, testAlert(99, ptrI64(4), "Acme", model.CriticalityLow, nil, "1.00"))
	if len(second[0].Alerts) != 1 {
		t.Fatalf("group results share backing storage")
	}
}

func TestGroupBySupplier_Empty(t *testing.T) {
	if groups := GroupBySupplier(nil); len(groups) != 0 {
		t.Fatalf("expected no groups for empty input, got %d", len(groups))
	}
}

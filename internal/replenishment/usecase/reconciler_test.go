package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
)

func TestInterpret_Outcomes(t *testing.T) {
	cases := []struct {
		name      string
		result    model.BatchResult
		outcome   model.BatchOutcome
		fragments []string
	}{
		{
			name:    "total success",
			result:  model.BatchResult{TotalProcessed: 3, Succeeded: 3, Failed: 0},
			outcome: model.OutcomeTotalSuccess,
		},
		{
			name: "partial success",
			result: model.BatchResult{
				TotalProcessed:   5,
				Succeeded:        3,
				Failed:           2,
				PurchaseOrderIDs: []int64{101, 102, 103},
			},
			outcome:   model.OutcomePartialSuccess,
			fragments: []string{"3", "5", "2"},
		},
		{
			name:    "total failure",
			result:  model.BatchResult{TotalProcessed: 4, Succeeded: 0, Failed: 4},
			outcome: model.OutcomeTotalFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := Interpret(&tc.result)
			if summary.Outcome != tc.outcome {
				t.Fatalf("expected outcome %s, got %s", tc.outcome, summary.Outcome)
			}
			for _, frag := range tc.fragments {
				if !strings.Contains(summary.Message, frag) {
					t.Fatalf("message %q missing %q", summary.Message, frag)
				}
			}
		})
	}
}

func TestInterpret_PartialFailureStillListsOrders(t *testing.T) {
	result := &model.BatchResult{
		TotalProcessed:   5,
		Succeeded:        3,
		Failed:           2,
		PurchaseOrderIDs: []int64{101, 102, 103},
		FailureMessages:  []string{"producto sin stock histórico", "proveedor inactivo"},
	}

	summary := Interpret(result)
	if summary.Outcome == model.OutcomeTotalSuccess {
		t.Fatal("a batch with failures must never read as total success")
	}
	if len(summary.PurchaseOrderIDs) != 3 {
		t.Fatalf("generated orders must survive a partial failure, got %v", summary.PurchaseOrderIDs)
	}
	if len(summary.FailureMessages) != 2 {
		t.Fatalf("expected 2 failure messages, got %v", summary.FailureMessages)
	}
}

func TestInterpret_CopiesArtifactLists(t *testing.T) {
	result := &model.BatchResult{
		TotalProcessed:   1,
		Succeeded:        1,
		Elapsed:          1500 * time.Millisecond,
		PurchaseOrderIDs: []int64{101},
		ForecastIDs:      []int64{11},
		OptimizationIDs:  []int64{21},
	}

	summary := Interpret(result)
	if summary.ElapsedMillis != 1500 {
		t.Fatalf("expected 1500ms elapsed, got %d", summary.ElapsedMillis)
	}

	summary.PurchaseOrderIDs[0] = 999
	if result.PurchaseOrderIDs[0] != 101 {
		t.Fatal("summary must not share backing arrays with the immutable result")
	}
}

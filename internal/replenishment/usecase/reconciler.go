package usecase

import (
	"fmt"

	"github.com/fekuna/omnipos-replenishment-service/internal/model"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment/dto"
)

// Interpret turns a raw batch result into the summary the results screen
// renders. It distinguishes total success, partial success and total failure;
// a partially failed batch still lists whatever orders were generated.
func Interpret(result *model.BatchResult) dto.BatchSummary {
	outcome := result.Classify()

	var message string
	switch outcome {
	case model.OutcomeTotalSuccess:
		message = fmt.Sprintf("Se generaron órdenes para las %d alertas seleccionadas", result.Succeeded)
	case model.OutcomePartialSuccess:
		message = fmt.Sprintf("Se procesaron %d de %d alertas; %d fallaron", result.Succeeded, result.TotalProcessed, result.Failed)
	default:
		message = fmt.Sprintf("No se pudo procesar ninguna de las %d alertas", result.TotalProcessed)
	}

	return dto.BatchSummary{
		Outcome:          outcome,
		Message:          message,
		TotalProcessed:   result.TotalProcessed,
		Succeeded:        result.Succeeded,
		Failed:           result.Failed,
		ElapsedMillis:    result.Elapsed.Milliseconds(),
		FailureMessages:  append([]string(nil), result.FailureMessages...),
		ForecastIDs:      append([]int64(nil), result.ForecastIDs...),
		OptimizationIDs:  append([]int64(nil), result.OptimizationIDs...),
		PurchaseOrderIDs: append([]int64(nil), result.PurchaseOrderIDs...),
	}
}

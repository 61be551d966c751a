package interfaces

import (
	"context"

	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

// ReportSink receives the final account snapshot of an ingestion run.
type ReportSink interface {
	WriteAccounts(ctx context.Context, accounts []models.AccountStatus) error
}

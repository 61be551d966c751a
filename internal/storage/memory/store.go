package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/transactions-processor/internal/interfaces"
	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

// MemoryReportStore is an in-memory implementation of interfaces.ReportSink.
// Every WriteAccounts call is kept as a separate report.
type MemoryReportStore struct {
	mu      sync.Mutex
	reports [][]models.AccountStatus
}

func NewMemoryReportStore() *MemoryReportStore {
	return &MemoryReportStore{
		reports: make([][]models.AccountStatus, 0),
	}
}

func (m *MemoryReportStore) WriteAccounts(ctx context.Context, accounts []models.AccountStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.AccountStatus, len(accounts))
	copy(copied, accounts)
	m.reports = append(m.reports, copied)
	return nil
}

// Latest returns a copy of the most recent report, or nil if none was written.
func (m *MemoryReportStore) Latest() []models.AccountStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.reports) == 0 {
		return nil
	}
	last := m.reports[len(m.reports)-1]
	copied := make([]models.AccountStatus, len(last))
	copy(copied, last)
	return copied
}

func (m *MemoryReportStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

// Compile-time check: ensure MemoryReportStore implements ReportSink
var _ interfaces.ReportSink = (*MemoryReportStore)(nil)

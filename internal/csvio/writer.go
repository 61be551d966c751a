package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	interfaces "github.com/sheikh-saqib/transactions-processor/internal/interfaces"
	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

var reportHeader = []string{"client", "available", "held", "total", "locked"}

// Writer serializes account snapshots as CSV.
type Writer struct {
	w *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// WriteAccounts writes the header followed by one row per account.
func (w *Writer) WriteAccounts(ctx context.Context, accounts []models.AccountStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := w.w.Write(reportHeader); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.ClientID), 10),
			a.Available.StringFixed(Precision),
			a.Held.StringFixed(Precision),
			a.Total.StringFixed(Precision),
			strconv.FormatBool(a.Locked),
		}
		if err := w.w.Write(row); err != nil {
			return fmt.Errorf("csvio: write client %d: %w", a.ClientID, err)
		}
	}

	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}
	return nil
}

var _ interfaces.ReportSink = (*Writer)(nil)

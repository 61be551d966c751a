package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/transactions-processor/internal/csvio"
	interfaces "github.com/sheikh-saqib/transactions-processor/internal/interfaces"
	"github.com/sheikh-saqib/transactions-processor/internal/ledger"
	"github.com/sheikh-saqib/transactions-processor/internal/models"
	"github.com/sheikh-saqib/transactions-processor/internal/models/events"
)

// Source yields transactions one at a time and io.EOF when exhausted.
// A *csvio.DecodeError marks a row that is skipped.
type Source interface {
	Read() (models.Transaction, error)
}

// Topics names where each event type is published.
type Topics struct {
	Rejected string
	Locked   string
}

// Summary counts what happened during a run.
type Summary struct {
	RunID            string
	Read             int
	Applied          int
	HardErrors       int
	BusinessOutcomes int
	Skipped          int
	AccountsLocked   int
}

func (s Summary) Rejected() int {
	return s.HardErrors + s.BusinessOutcomes
}

// Processor feeds transactions into a ledger, one at a time, and applies the
// rejection policy: every rejection is logged and counted, none stops the run.
type Processor struct {
	ledger    *ledger.Ledger
	publisher interfaces.EventPublisher
	topics    Topics
	logger    *zap.Logger
	now       func() time.Time
	summary   Summary
}

type Option func(*Processor)

// WithPublisher publishes rejection and lock events. Without it no events are sent.
func WithPublisher(publisher interfaces.EventPublisher, topics Topics) Option {
	return func(p *Processor) {
		p.publisher = publisher
		p.topics = topics
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

func WithRunID(runID string) Option {
	return func(p *Processor) { p.summary.RunID = runID }
}

func withClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func New(l *ledger.Ledger, opts ...Option) *Processor {
	p := &Processor{
		ledger:  l,
		logger:  zap.NewNop(),
		now:     time.Now,
		summary: Summary{RunID: uuid.NewString()},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("run_id", p.summary.RunID))
	return p
}

// Run drains src into the ledger. It stops early only when ctx is done or
// src fails with something other than a decode error.
func (p *Processor) Run(ctx context.Context, src Source) (Summary, error) {
	for {
		if err := ctx.Err(); err != nil {
			return p.summary, err
		}

		tx, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var decodeErr *csvio.DecodeError
			if errors.As(err, &decodeErr) {
				p.summary.Skipped++
				p.logger.Warn("skipping malformed record", zap.Int("line", decodeErr.Line), zap.Error(decodeErr.Err))
				continue
			}
			return p.summary, fmt.Errorf("processor: read: %w", err)
		}

		p.summary.Read++
		_ = p.Apply(ctx, tx)
	}

	s := p.summary
	p.logger.Info("ingestion finished",
		zap.Int("read", s.Read),
		zap.Int("applied", s.Applied),
		zap.Int("hard_errors", s.HardErrors),
		zap.Int("business_outcomes", s.BusinessOutcomes),
		zap.Int("skipped", s.Skipped),
		zap.Int("accounts_locked", s.AccountsLocked),
	)
	return s, nil
}

// Apply processes a single transaction and returns the ledger's verdict.
// The error is informational: it has already been logged and counted.
func (p *Processor) Apply(ctx context.Context, tx models.Transaction) error {
	wasLocked := false
	if status, ok := p.ledger.Account(tx.ClientID); ok {
		wasLocked = status.Locked
	}

	err := p.ledger.Process(tx)
	if err != nil {
		p.reject(ctx, tx, err)
		return err
	}
	p.summary.Applied++

	if status, _ := p.ledger.Account(tx.ClientID); status.Locked && !wasLocked {
		p.summary.AccountsLocked++
		p.logger.Info("account locked by chargeback", zap.Uint16("client", tx.ClientID), zap.Uint32("tx", tx.ID))
		p.publish(ctx, p.topics.Locked, tx.ClientID, events.AccountLocked{
			EventID:       uuid.NewString(),
			RunID:         p.summary.RunID,
			ClientID:      tx.ClientID,
			TransactionID: tx.ID,
			OccurredAt:    p.now().UTC(),
		})
	}
	return nil
}

func (p *Processor) reject(ctx context.Context, tx models.Transaction, err error) {
	fields := []zap.Field{
		zap.Uint32("tx", tx.ID),
		zap.Uint16("client", tx.ClientID),
		zap.Stringer("type", tx.Type),
		zap.Error(err),
	}

	severity := events.SeverityHard
	if ledger.IsBusinessOutcome(err) {
		severity = events.SeverityBusiness
		p.summary.BusinessOutcomes++
		p.logger.Debug("transaction rejected", fields...)
	} else {
		p.summary.HardErrors++
		p.logger.Warn("transaction processing failed", fields...)
	}

	p.publish(ctx, p.topics.Rejected, tx.ClientID, events.TransactionRejected{
		EventID:       uuid.NewString(),
		RunID:         p.summary.RunID,
		TransactionID: tx.ID,
		ClientID:      tx.ClientID,
		Type:          tx.Type.String(),
		Reason:        reason(err),
		Severity:      severity,
		OccurredAt:    p.now().UTC(),
	})
}

func (p *Processor) publish(ctx context.Context, topic string, client uint16, event any) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, topic, strconv.FormatUint(uint64(client), 10), event); err != nil {
		p.logger.Error("publish event", zap.String("topic", topic), zap.Error(err))
	}
}

// reason is the innermost ledger cause, without transaction coordinates
// that the event already carries.
func reason(err error) string {
	var txErr *ledger.TransactionError
	if errors.As(err, &txErr) {
		return txErr.Err.Error()
	}
	return err.Error()
}

// Summary returns the counters accumulated so far.
func (p *Processor) Summary() Summary {
	return p.summary
}

// Report writes the ledger snapshot to every sink, stopping at the first failure.
func (p *Processor) Report(ctx context.Context, sinks ...interfaces.ReportSink) error {
	accounts := p.ledger.Accounts()
	for _, sink := range sinks {
		if err := sink.WriteAccounts(ctx, accounts); err != nil {
			return fmt.Errorf("processor: report: %w", err)
		}
	}
	return nil
}

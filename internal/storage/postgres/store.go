package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	interfaces "github.com/sheikh-saqib/transactions-processor/internal/interfaces"
	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     TEXT           NOT NULL,
	client_id  INTEGER        NOT NULL,
	available  NUMERIC(30, 4) NOT NULL,
	held       NUMERIC(30, 4) NOT NULL,
	total      NUMERIC(30, 4) NOT NULL,
	locked     BOOLEAN        NOT NULL,
	created_at TIMESTAMPTZ    NOT NULL,
	PRIMARY KEY (run_id, client_id)
)`

// PostgresReportStore exports the final account snapshot of one run.
// The engine never reads it back.
type PostgresReportStore struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

func NewPostgresReportStore(db *sql.DB, runID string) *PostgresReportStore {
	return &PostgresReportStore{
		db:    db,
		runID: runID,
		now:   time.Now,
	}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (p *PostgresReportStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

func (p *PostgresReportStore) saveAccount(ctx context.Context, dbTx *sql.Tx, account models.AccountStatus, createdAt time.Time) error {
	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := dbTx.ExecContext(ctx, query, p.runID, int32(account.ClientID),
		account.Available, account.Held, account.Total, account.Locked, createdAt)
	return err
}

// WriteAccounts stores every account in one SQL transaction: either the whole
// snapshot is visible or none of it is.
func (p *PostgresReportStore) WriteAccounts(ctx context.Context, accounts []models.AccountStatus) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	defer func() {
		if err != nil {
			_ = dbTx.Rollback()
		}
	}()

	createdAt := p.now().UTC()
	for _, account := range accounts {
		if err = p.saveAccount(ctx, dbTx, account, createdAt); err != nil {
			return fmt.Errorf("postgres: save client %d: %w", account.ClientID, err)
		}
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// GetAccounts returns the snapshot stored for runID, ordered by client id.
func (p *PostgresReportStore) GetAccounts(ctx context.Context, runID string) ([]models.AccountStatus, error) {
	const query = `SELECT client_id, available, held, total, locked FROM account_snapshots
	WHERE run_id = $1 ORDER BY client_id`

	rows, err := p.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("postgres: query snapshot: %w", err)
	}
	defer rows.Close()

	var accounts []models.AccountStatus
	for rows.Next() {
		var (
			account  models.AccountStatus
			clientID int32
		)
		if err := rows.Scan(&clientID, &account.Available, &account.Held, &account.Total, &account.Locked); err != nil {
			return nil, fmt.Errorf("postgres: scan snapshot: %w", err)
		}
		account.ClientID = uint16(clientID)
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate snapshot: %w", err)
	}
	return accounts, nil
}

var _ interfaces.ReportSink = (*PostgresReportStore)(nil)

package ledger

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

// record is a deposit or withdrawal kept in history so it can be disputed later.
type record struct {
	tx       models.Transaction
	disputed bool
}

// amountAtStake is what a dispute holds: the amount of a deposit, or the
// negated amount of a withdrawal, whose debit already left available.
func (r *record) amountAtStake() (decimal.Decimal, error) {
	switch r.tx.Type {
	case models.Deposit:
		return r.tx.Amount, nil
	case models.Withdrawal:
		return r.tx.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: dispute can only be applied to deposit or withdrawal, got %s",
			ErrInvalidTransactionType, r.tx.Type)
	}
}

// Ledger folds a stream of transactions into per-client accounts.
//
// It owns all account and history state. It is not safe for concurrent use:
// transactions are applied one at a time in arrival order.
type Ledger struct {
	accounts map[uint16]*Account // client id -> account, created on first sight
	history  map[uint32]*record  // transaction id -> deposit/withdrawal
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[uint16]*Account),
		history:  make(map[uint32]*record),
	}
}

// Process applies one transaction. A rejected transaction leaves every balance
// untouched and is reported as a *TransactionError.
func (l *Ledger) Process(tx models.Transaction) error {
	account := l.account(tx.ClientID)

	var err error
	switch tx.Type {
	case models.Deposit, models.Withdrawal:
		err = l.applyMovement(account, tx)
	case models.Dispute, models.Resolve, models.Chargeback:
		err = l.applyDisputeStep(account, tx)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidTransactionType, tx.Type)
	}

	if err != nil {
		return &TransactionError{
			TransactionID: tx.ID,
			ClientID:      tx.ClientID,
			Type:          tx.Type,
			Err:           err,
		}
	}
	return nil
}

func (l *Ledger) applyMovement(account *Account, tx models.Transaction) error {
	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: %s amount %s cannot be negative", ErrInvalidAmount, tx.Type, tx.Amount)
	}
	if _, seen := l.history[tx.ID]; seen {
		return ErrDuplicateTransaction
	}

	var err error
	if tx.Type == models.Deposit {
		err = account.deposit(tx.Amount)
	} else {
		err = account.withdraw(tx.Amount)
	}
	if err != nil {
		return err
	}

	l.history[tx.ID] = &record{tx: tx}
	return nil
}

// applyDisputeStep drives the Normal <-> Disputed state machine of the
// referenced history record.
func (l *Ledger) applyDisputeStep(account *Account, tx models.Transaction) error {
	original, ok := l.history[tx.ID]
	if !ok {
		return ErrTransactionNotFound
	}
	if original.tx.ClientID != tx.ClientID {
		return ErrDisputeForDifferentClient
	}

	amount, err := original.amountAtStake()
	if err != nil {
		return err
	}

	switch tx.Type {
	case models.Dispute:
		if original.disputed {
			return ErrTransactionAlreadyDisputed
		}
		original.disputed = true
		account.holdFunds(amount)
	case models.Resolve:
		if !original.disputed {
			return ErrNotDisputed
		}
		original.disputed = false
		account.releaseFunds(amount)
	case models.Chargeback:
		if !original.disputed {
			return ErrNotDisputed
		}
		// The account lock, not the record, is the terminal marker.
		original.disputed = false
		account.chargeback(amount)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidTransactionType, tx.Type)
	}
	return nil
}

func (l *Ledger) account(clientID uint16) *Account {
	account, ok := l.accounts[clientID]
	if !ok {
		account = newAccount(clientID)
		l.accounts[clientID] = account
	}
	return account
}

// Account returns the current state of one client's account.
func (l *Ledger) Account(clientID uint16) (models.AccountStatus, bool) {
	account, ok := l.accounts[clientID]
	if !ok {
		return models.AccountStatus{}, false
	}
	return account.Status(), true
}

// Accounts returns a snapshot of every known account, ordered by client id.
func (l *Ledger) Accounts() []models.AccountStatus {
	statuses := make([]models.AccountStatus, 0, len(l.accounts))
	for _, account := range l.accounts {
		statuses = append(statuses, account.Status())
	}
	slices.SortFunc(statuses, func(a, b models.AccountStatus) int {
		return cmp.Compare(a.ClientID, b.ClientID)
	})
	return statuses
}

// IsDisputed reports whether a stored deposit or withdrawal is under dispute.
func (l *Ledger) IsDisputed(transactionID uint32) (disputed, found bool) {
	r, ok := l.history[transactionID]
	if !ok {
		return false, false
	}
	return r.disputed, true
}

package ledger

import (
	"errors"
	"fmt"

	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

var (
	ErrInsufficientFunds          = errors.New("ledger: insufficient funds for withdrawal")
	ErrAccountLocked              = errors.New("ledger: account is locked")
	ErrInvalidTransactionType     = errors.New("ledger: invalid transaction type")
	ErrInvalidAmount              = errors.New("ledger: invalid transaction amount")
	ErrTransactionNotFound        = errors.New("ledger: transaction not found")
	ErrTransactionAlreadyDisputed = errors.New("ledger: transaction is already disputed")
	ErrNotDisputed                = errors.New("ledger: transaction was not disputed")
	ErrDisputeForDifferentClient  = errors.New("ledger: dispute operations can only be applied to the same client account")
	ErrDuplicateTransaction       = errors.New("ledger: transaction id already used")
)

// TransactionError is returned by Ledger.Process for every rejected transaction.
// It wraps one of the Err* sentinels above.
type TransactionError struct {
	TransactionID uint32
	ClientID      uint16
	Type          models.TransactionType
	Err           error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s transaction (id=%d, client=%d): %v", e.Type, e.TransactionID, e.ClientID, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// businessOutcomes are rejections expected from an untrusted transaction stream.
var businessOutcomes = []error{
	ErrInsufficientFunds,
	ErrTransactionNotFound,
	ErrNotDisputed,
	ErrTransactionAlreadyDisputed,
}

// IsBusinessOutcome reports whether err is a normal business rejection rather
// than a hard error. Neither kind should stop an ingestion run.
func IsBusinessOutcome(err error) bool {
	for _, target := range businessOutcomes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

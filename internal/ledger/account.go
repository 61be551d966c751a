package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

// Account holds one client's balances. Only the Ledger mutates it.
//
// total is tracked alongside available and held and always equals their sum.
// available and held may go negative while a withdrawal is disputed.
type Account struct {
	clientID  uint16
	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool
}

func newAccount(clientID uint16) *Account {
	return &Account{
		clientID:  clientID,
		available: decimal.Zero,
		held:      decimal.Zero,
		total:     decimal.Zero,
	}
}

func (a *Account) ClientID() uint16 { return a.clientID }
func (a *Account) Available() decimal.Decimal { return a.available }
func (a *Account) Held() decimal.Decimal { return a.held }
func (a *Account) Total() decimal.Decimal { return a.total }
func (a *Account) Locked() bool { return a.locked }

// Status returns a copy of the account safe to hand out of the package.
func (a *Account) Status() models.AccountStatus {
	return models.AccountStatus{
		ClientID:  a.clientID,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}

func (a *Account) deposit(amount decimal.Decimal) error {
	if a.locked {
		return ErrAccountLocked
	}

	a.available = a.available.Add(amount)
	a.total = a.total.Add(amount)
	return nil
}

func (a *Account) withdraw(amount decimal.Decimal) error {
	if a.locked {
		return ErrAccountLocked
	}
	if a.available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.available = a.available.Sub(amount)
	a.total = a.total.Sub(amount)
	return nil
}

// holdFunds, releaseFunds and chargeback skip the lock check: they settle
// disputes, and chargeback is the operation that sets the lock.

func (a *Account) holdFunds(amount decimal.Decimal) {
	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
}

func (a *Account) releaseFunds(amount decimal.Decimal) {
	a.held = a.held.Sub(amount)
	a.available = a.available.Add(amount)
}

func (a *Account) chargeback(amount decimal.Decimal) {
	a.held = a.held.Sub(amount)
	a.total = a.total.Sub(amount)
	a.locked = true
}

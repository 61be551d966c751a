package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a transaction record.
type TransactionType uint8

const (
	Deposit TransactionType = iota + 1
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

var transactionTypeNames = map[TransactionType]string{
	Deposit:    "deposit",
	Withdrawal: "withdrawal",
	Dispute:    "dispute",
	Resolve:    "resolve",
	Chargeback: "chargeback",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", uint8(t))
}

// MovesMoney reports whether the type carries an amount and is kept in history.
func (t TransactionType) MovesMoney() bool {
	return t == Deposit || t == Withdrawal
}

// ParseTransactionType maps the lowercase wire name to a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	for t, name := range transactionTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is a single record of the input stream.
// Amount is only meaningful for deposits and withdrawals.
type Transaction struct {
	Type     TransactionType
	ClientID uint16
	ID       uint32
	Amount   decimal.Decimal
}

// NewDeposit and NewWithdrawal build money-moving records.
func NewDeposit(client uint16, id uint32, amount decimal.Decimal) Transaction {
	return Transaction{Type: Deposit, ClientID: client, ID: id, Amount: amount}
}

func NewWithdrawal(client uint16, id uint32, amount decimal.Decimal) Transaction {
	return Transaction{Type: Withdrawal, ClientID: client, ID: id, Amount: amount}
}

// NewReference builds a dispute, resolve or chargeback pointing at a prior transaction id.
func NewReference(t TransactionType, client uint16, id uint32) Transaction {
	return Transaction{Type: t, ClientID: client, ID: id}
}

package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "%s: want %s, got %s", field, want, got)
}

func assertBalanced(t *testing.T, a *Account) {
	t.Helper()
	assert.Truef(t, a.Total().Equal(a.Available().Add(a.Held())),
		"total %s != available %s + held %s", a.Total(), a.Available(), a.Held())
}

func TestAccountDepositWithdraw(t *testing.T) {
	a := newAccount(7)

	require.NoError(t, a.deposit(dec("10.5")))
	require.NoError(t, a.withdraw(dec("0.5")))

	assertDecimal(t, "10", a.Available(), "available")
	assertDecimal(t, "0", a.Held(), "held")
	assertDecimal(t, "10", a.Total(), "total")
	assert.Equal(t, uint16(7), a.ClientID())
	assertBalanced(t, a)
}

func TestAccountWithdrawInsufficientFunds(t *testing.T) {
	a := newAccount(1)
	require.NoError(t, a.deposit(dec("5")))

	err := a.withdraw(dec("5.0001"))

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assertDecimal(t, "5", a.Available(), "available")
	assertDecimal(t, "5", a.Total(), "total")
}

func TestAccountWithdrawExactBalance(t *testing.T) {
	a := newAccount(1)
	require.NoError(t, a.deposit(dec("5")))

	require.NoError(t, a.withdraw(dec("5")))
	assertDecimal(t, "0", a.Available(), "available")
}

func TestAccountLockedRejectsMovement(t *testing.T) {
	a := newAccount(1)
	require.NoError(t, a.deposit(dec("20")))
	a.holdFunds(dec("20"))
	a.chargeback(dec("20"))
	require.True(t, a.Locked())

	assert.ErrorIs(t, a.deposit(dec("1")), ErrAccountLocked)
	assert.ErrorIs(t, a.withdraw(dec("0")), ErrAccountLocked)
	assertDecimal(t, "0", a.Total(), "total")
}

func TestAccountDisputeBookkeepingIgnoresLock(t *testing.T) {
	a := newAccount(1)
	require.NoError(t, a.deposit(dec("30")))
	a.holdFunds(dec("10"))
	a.chargeback(dec("10"))
	require.True(t, a.Locked())

	a.holdFunds(dec("5"))
	assertDecimal(t, "15", a.Available(), "available")
	assertDecimal(t, "5", a.Held(), "held")

	a.releaseFunds(dec("5"))
	assertDecimal(t, "20", a.Available(), "available")
	assertDecimal(t, "0", a.Held(), "held")
	assertBalanced(t, a)
}

func TestAccountHoldNegativeAmount(t *testing.T) {
	a := newAccount(1)
	require.NoError(t, a.deposit(dec("200")))
	require.NoError(t, a.withdraw(dec("50")))

	a.holdFunds(dec("-50"))

	assertDecimal(t, "200", a.Available(), "available")
	assertDecimal(t, "-50", a.Held(), "held")
	assertDecimal(t, "150", a.Total(), "total")
	assertBalanced(t, a)
}

func TestAccountStatus(t *testing.T) {
	a := newAccount(3)
	require.NoError(t, a.deposit(dec("1.2345")))

	s := a.Status()
	assert.Equal(t, uint16(3), s.ClientID)
	assertDecimal(t, "1.2345", s.Available, "available")
	assertDecimal(t, "1.2345", s.Total, "total")
	assert.False(t, s.Locked)
}

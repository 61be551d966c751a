package models

import "github.com/shopspring/decimal"

// AccountStatus is a point-in-time copy of one client's account.
type AccountStatus struct {
	ClientID  uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

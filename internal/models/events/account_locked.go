package events

import "time"

// AccountLocked is emitted once, by the chargeback that locks the account.
type AccountLocked struct {
	EventID       string    `json:"event_id"`
	RunID         string    `json:"run_id"`
	ClientID      uint16    `json:"client_id"`
	TransactionID uint32    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

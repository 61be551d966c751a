package events

import "time"

// Severity tells consumers whether a rejection is an expected business outcome
// or a hard error that points at bad upstream data.
type Severity string

const (
	SeverityBusiness Severity = "business"
	SeverityHard     Severity = "hard"
)

type TransactionRejected struct {
	EventID       string    `json:"event_id"`
	RunID         string    `json:"run_id"`
	TransactionID uint32    `json:"transaction_id"`
	ClientID      uint16    `json:"client_id"`
	Type          string    `json:"type"`
	Reason        string    `json:"reason"`
	Severity      Severity  `json:"severity"`
	OccurredAt    time.Time `json:"occurred_at"`
}

package events

import (
	"encoding/json"
	"time"

	"financetrack/internal/core"
)

const (
	TypeTransactionCreated = "transaction.created"
	TypeTransactionDeleted = "transaction.deleted"
)

// TransactionEvent is the message published on every ledger mutation, so
// downstream consumers (sync jobs, audit trails) can follow the ledger
// without polling it.
type TransactionEvent struct {
	Type        string    `json:"type"`
	ID          int64     `json:"id"`
	Date        string    `json:"date,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Group       string    `json:"group,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewCreatedEvent(t core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Type:        TypeTransactionCreated,
		ID:          t.ID,
		Date:        t.Date.Key(),
		Description: t.Description,
		Category:    string(t.Category),
		Group:       string(t.Group),
		AmountCents: t.Amount.Cents,
		OccurredAt:  time.Now().UTC(),
	}
}

func NewDeletedEvent(id int64) *TransactionEvent {
	return &TransactionEvent{
		Type:       TypeTransactionDeleted,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

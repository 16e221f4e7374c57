package store

import (
	"context"

	"financetrack/internal/core"
)

// Memory is a persistence collaborator that only lives in process memory.
// Useful for tests and for running the service without a data directory.
type Memory struct {
	items []core.Transaction
}

func NewMemory(seed ...core.Transaction) *Memory {
	return &Memory{items: append([]core.Transaction(nil), seed...)}
}

func (m *Memory) Load(_ context.Context) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) Save(_ context.Context, txns []core.Transaction) error {
	m.items = make([]core.Transaction, len(txns))
	copy(m.items, txns)
	return nil
}

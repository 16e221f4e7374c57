// Package store holds the ordered transaction ledger and the persistence
// collaborators it synchronizes with.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"financetrack/internal/core"
	"financetrack/internal/log"
)

// Persistence is the collaborator the ledger syncs to: an opaque blob store
// holding the full serialized collection.
type Persistence interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txns []core.Transaction) error
}

// Ledger is the ordered, mutable transaction collection. It is the single
// source of truth while the process runs; every mutation is validated first
// (fail closed) and then written through to the persistence collaborator.
type Ledger struct {
	mu      sync.Mutex
	persist Persistence
	items   []core.Transaction
	nextID  int64
}

// Open loads the persisted collection and returns a ledger seeded with it.
// The next ID continues above the highest persisted one.
func Open(ctx context.Context, p Persistence) (*Ledger, error) {
	items, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	var maxID int64
	for _, t := range items {
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	slog.InfoContext(ctx, "Ledger opened", log.FieldCount, len(items), "next_id", maxID+1)

	return &Ledger{
		persist: p,
		items:   items,
		nextID:  maxID + 1,
	}, nil
}

// Add validates and appends a transaction, assigning the next ID when the
// record carries none, then persists the full collection. The stored record
// is returned. On persistence failure the append is rolled back so the
// in-memory state never diverges from the blob store.
func (l *Ledger) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if t.ID == 0 {
		t.ID = l.nextID
	}
	if t.ID >= l.nextID {
		l.nextID = t.ID + 1
	}

	l.items = append(l.items, t)
	if err := l.persist.Save(ctx, l.items); err != nil {
		l.items = l.items[:len(l.items)-1]
		return core.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transaction stored",
		log.FieldTransactionID, t.ID,
		log.FieldDescription, t.Description,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldCategory, t.Category,
		log.FieldGroup, t.Group,
		"date", t.Date.Key())

	return t, nil
}

// Remove deletes the record with the given ID and persists. Removing an
// absent ID is a logged no-op, never an error to the caller.
func (l *Ledger) Remove(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, t := range l.items {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.DebugContext(ctx, "Remove of unknown transaction ignored", log.FieldTransactionID, id)
		return nil
	}

	removed := l.items[idx]
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	if err := l.persist.Save(ctx, l.items); err != nil {
		l.items = append(l.items[:idx], append([]core.Transaction{removed}, l.items[idx:]...)...)
		return fmt.Errorf("persist transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transaction removed", log.FieldTransactionID, id)
	return nil
}

// All returns a copy of the collection in insertion order.
func (l *Ledger) All() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.Transaction, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of stored transactions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

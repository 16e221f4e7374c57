// Package services orchestrates ledger mutations across the store and the
// event publisher.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"financetrack/internal/core"
	"financetrack/internal/events"
	"financetrack/internal/log"
	"financetrack/internal/store"
)

// Input carries the raw form values of a new transaction, before
// normalization. All fields arrive as strings from the submission boundary.
type Input struct {
	Date        string
	Description string
	Category    string
	Group       string
	Amount      string
}

// LedgerService validates and normalizes submissions, writes them to the
// ledger and emits events. Event failures never fail the request: the
// ledger write is the source of truth.
type LedgerService struct {
	ledger    *store.Ledger
	publisher *events.Client
}

func NewLedgerService(ledger *store.Ledger, publisher *events.Client) *LedgerService {
	return &LedgerService{
		ledger:    ledger,
		publisher: publisher,
	}
}

// Create normalizes the raw input, validates it, stores the record and
// publishes a created event. Nothing is written when any field fails
// validation.
func (s *LedgerService) Create(ctx context.Context, in Input) (core.Transaction, error) {
	date, err := core.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return core.Transaction{}, err
	}

	cents, err := core.ParseSignedDecimalToCents(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Category:    core.Category(strings.TrimSpace(in.Category)),
		Group:       core.Group(strings.TrimSpace(in.Group)),
		Amount:      core.Money{Cents: cents},
	}

	stored, err := s.ledger.Add(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("store transaction: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewCreatedEvent(stored)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish created event",
			log.FieldTransactionID, stored.ID, log.FieldError, err)
	}

	return stored, nil
}

// Delete removes a record by ID and publishes a deleted event. An unknown ID
// is a no-op, mirroring the ledger contract.
func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	if err := s.ledger.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove transaction: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.NewDeletedEvent(id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish deleted event",
			log.FieldTransactionID, id, log.FieldError, err)
	}

	return nil
}

// All returns the full ledger in insertion order.
func (s *LedgerService) All() []core.Transaction {
	return s.ledger.All()
}

// Filtered applies the criteria over the full ledger.
func (s *LedgerService) Filtered(c core.Criteria) ([]core.Transaction, error) {
	return core.Apply(s.ledger.All(), c)
}

// Close releases the event publisher connection.
func (s *LedgerService) Close() error {
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}

// Package storage provides the SQLite persistence backend. The table mirrors
// the JSON blob contract: Save replaces the whole collection, Load returns it
// in insertion order.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"financetrack/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements store.Persistence.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, description, category, grp, amount_cents
		FROM transactions
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var (
			t        core.Transaction
			dateStr  string
			category string
			group    string
		)
		if err := rows.Scan(&t.ID, &dateStr, &t.Description, &category, &group, &t.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
		}
		t.Date = date
		t.Category = core.Category(category)
		t.Group = core.Group(group)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

// Save implements store.Persistence. The collection is replaced wholesale in
// a single transaction so a failed write never leaves a partial state.
func (r *SQLiteRepository) Save(ctx context.Context, txns []core.Transaction) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbtx.PrepareContext(ctx, `
		INSERT INTO transactions (id, date, description, category, grp, amount_cents, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		_, err := stmt.ExecContext(ctx,
			t.ID,
			t.Date.Key(),
			t.Description,
			string(t.Category),
			string(t.Group),
			t.Amount.Cents,
			i,
		)
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}
	return nil
}

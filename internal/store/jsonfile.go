package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"financetrack/internal/core"
)

// Namespace is the fixed key the collection is stored under, carried over
// from the browser-storage era of the application.
const Namespace = "financetrack.pro:transactions"

// JSONFile persists the whole collection as a JSON array in a single file.
type JSONFile struct {
	path string
}

// record is the wire form of a transaction in the blob.
type record struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Group       string `json:"group"`
	Amount      int64  `json:"amount"`
}

// NewJSONFile persists to an explicit file path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// NewJSONFileInDir persists under the fixed namespace key inside dir.
func NewJSONFileInDir(dir string) *JSONFile {
	return &JSONFile{path: filepath.Join(dir, Namespace+".json")}
}

// Load reads the collection. A missing file is an empty collection.
func (f *JSONFile) Load(_ context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}

	txns := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		t, err := r.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.ID, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// Save writes the collection atomically: a temp file in the same directory
// is renamed over the blob so readers never see a partial write.
func (f *JSONFile) Save(_ context.Context, txns []core.Transaction) error {
	records := make([]record, 0, len(txns))
	for _, t := range txns {
		records = append(records, fromTransaction(t))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".financetrack-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (r record) toTransaction() (core.Transaction, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          r.ID,
		Date:        date,
		Description: r.Description,
		Category:    core.Category(r.Category),
		Group:       core.Group(r.Group),
		Amount:      core.Money{Cents: r.Amount},
	}, nil
}

func fromTransaction(t core.Transaction) record {
	return record{
		ID:          t.ID,
		Date:        t.Date.Key(),
		Description: t.Description,
		Category:    string(t.Category),
		Group:       string(t.Group),
		Amount:      t.Amount.Cents,
	}
}

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetrack/internal/core"
)

func testStatement() Statement {
	txns := []core.Transaction{
		{
			ID:          1,
			Date:        core.NewDate(2025, 10, 25),
			Description: "Online Course Subscription",
			Category:    core.CategoryEducation,
			Group:       core.GroupBusiness,
			Amount:      core.Money{Cents: -114300},
		},
		{
			ID:          2,
			Date:        core.NewDate(2025, 10, 28),
			Description: "Consulting invoice",
			Category:    core.CategoryOther,
			Group:       core.GroupBusiness,
			Amount:      core.Money{Cents: 450000},
		},
	}
	return Statement{
		Month:        "2025-10",
		Transactions: txns,
		Totals:       core.ComputeTotals(txns),
		GeneratedAt:  time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriteStatement(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatement(&buf, testStatement()))

	out := buf.Bytes()
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
	assert.Contains(t, string(out[len(out)-32:]), "%%EOF", "document must be terminated")
}

func TestWriteStatementEmptyMonth(t *testing.T) {
	var buf bytes.Buffer
	stmt := Statement{
		Month:       "2025-09",
		Totals:      core.ComputeTotals(nil),
		GeneratedAt: time.Now(),
	}
	require.NoError(t, WriteStatement(&buf, stmt))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteStatementManyPages(t *testing.T) {
	stmt := testStatement()
	base := stmt.Transactions[0]
	for i := 0; i < 120; i++ {
		tx := base
		tx.ID = int64(i + 10)
		stmt.Transactions = append(stmt.Transactions, tx)
	}
	stmt.Totals = core.ComputeTotals(stmt.Transactions)

	var buf bytes.Buffer
	require.NoError(t, WriteStatement(&buf, stmt))
	assert.Greater(t, buf.Len(), 4096, "multi-page statement should not be tiny")
}

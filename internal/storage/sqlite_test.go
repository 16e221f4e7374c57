package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetrack/internal/core"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "financetrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

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
			Description: "Consulting income",
			Category:    core.CategoryOther,
			Group:       core.GroupBusiness,
			Amount:      core.Money{Cents: 450000},
		},
	}

	require.NoError(t, repo.Save(ctx, txns))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(1), loaded[0].ID)
	assert.Equal(t, "2025-10-25", loaded[0].Date.Key())
	assert.Equal(t, core.GroupBusiness, loaded[0].Group)
	assert.Equal(t, int64(-114300), loaded[0].Amount.Cents)
	assert.Equal(t, "Consulting income", loaded[1].Description)
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	repo := openTestRepo(t)
	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteSaveReplacesCollection(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	first := []core.Transaction{{
		ID:          1,
		Date:        core.NewDate(2025, 1, 1),
		Description: "groceries",
		Category:    core.CategoryFood,
		Group:       core.GroupFamily,
		Amount:      core.Money{Cents: -5000},
	}}
	require.NoError(t, repo.Save(ctx, first))

	second := []core.Transaction{{
		ID:          7,
		Date:        core.NewDate(2025, 2, 2),
		Description: "bus pass",
		Category:    core.CategoryTransport,
		Group:       core.GroupPersonal,
		Amount:      core.Money{Cents: -1200},
	}}
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(7), loaded[0].ID)
}

func TestSQLitePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	// IDs deliberately out of order: position, not id, drives iteration order.
	txns := []core.Transaction{
		{ID: 9, Date: core.NewDate(2025, 3, 1), Description: "a", Category: core.CategoryFood, Group: core.GroupPersonal, Amount: core.Money{Cents: -100}},
		{ID: 2, Date: core.NewDate(2025, 3, 2), Description: "b", Category: core.CategoryFood, Group: core.GroupPersonal, Amount: core.Money{Cents: -200}},
		{ID: 5, Date: core.NewDate(2025, 3, 3), Description: "c", Category: core.CategoryFood, Group: core.GroupPersonal, Amount: core.Money{Cents: -300}},
	}
	require.NoError(t, repo.Save(ctx, txns))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, []int64{9, 2, 5}, []int64{loaded[0].ID, loaded[1].ID, loaded[2].ID})
}

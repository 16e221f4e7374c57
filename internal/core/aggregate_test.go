package core

import (
	"reflect"
	"testing"
	"time"
)

func TestComputeTotalsSingleExpense(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-25", CategoryEducation, GroupBusiness, -114300),
	}
	got := ComputeTotals(txns)
	want := Totals{
		Income:       0,
		Expense:      -114300,
		Net:          -114300,
		Average:      -114300,
		Count:        1,
		IncomeCount:  0,
		ExpenseCount: 1,
	}
	if got != want {
		t.Fatalf("totals mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil)
	if got != (Totals{}) {
		t.Fatalf("expected all zeros for empty input, got %+v", got)
	}
}

func TestComputeTotalsNetIdentity(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-01", CategoryOther, GroupPersonal, 500000),
		tx(2, "2025-10-02", CategoryFood, GroupPersonal, -12345),
		tx(3, "2025-10-03", CategoryHealth, GroupFamily, -7800),
		tx(4, "2025-10-04", CategoryOther, GroupInvestment, 99999),
	}
	got := ComputeTotals(txns)
	if got.Net != got.Income+got.Expense {
		t.Fatalf("net %d != income %d + expense %d", got.Net, got.Income, got.Expense)
	}
	if got.IncomeCount+got.ExpenseCount != got.Count {
		t.Fatalf("counts do not add up: %+v", got)
	}

	// Purity: recomputing from the same input yields identical output.
	if again := ComputeTotals(txns); again != got {
		t.Fatalf("totals not deterministic: %+v vs %+v", got, again)
	}
}

func TestCountsByCategory(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-01", CategoryFood, GroupPersonal, -500),
		tx(2, "2025-10-02", CategoryTransport, GroupPersonal, -300),
	}
	got := CountsByCategory(txns)
	want := map[Category]int{CategoryFood: 1, CategoryTransport: 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("counts mismatch: got %v want %v", got, want)
	}
}

func TestExpenseAndIncomeSumsByCategory(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-01", CategoryFood, GroupPersonal, -500),
		tx(2, "2025-10-02", CategoryFood, GroupPersonal, -300),
		tx(3, "2025-10-03", CategoryOther, GroupPersonal, 10000),
		tx(4, "2025-10-04", CategoryFood, GroupPersonal, 250),
	}

	exp := ExpenseSumsByCategory(txns)
	if !reflect.DeepEqual(exp, map[Category]int64{CategoryFood: 800}) {
		t.Fatalf("expense sums mismatch: %v", exp)
	}

	inc := IncomeSumsByCategory(txns)
	want := map[Category]int64{CategoryOther: 10000, CategoryFood: 250}
	if !reflect.DeepEqual(inc, want) {
		t.Fatalf("income sums mismatch: %v", inc)
	}
}

func TestDistinctCounts(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-01", CategoryFood, GroupPersonal, -500),
		tx(2, "2025-10-02", CategoryFood, GroupFamily, -300),
		tx(3, "2025-10-03", CategoryHealth, GroupPersonal, -100),
	}
	if got := DistinctCategories(txns); got != 2 {
		t.Fatalf("expected 2 distinct categories, got %d", got)
	}
	if got := DistinctGroups(txns); got != 2 {
		t.Fatalf("expected 2 distinct groups, got %d", got)
	}
	if DistinctCategories(nil) != 0 || DistinctGroups(nil) != 0 {
		t.Fatalf("empty input must yield zero distinct values")
	}
}

func TestMonthlyEvolution(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	// Records spread across 8 distinct months; only the last 6 land in the
	// window.
	var txns []Transaction
	months := []string{"2025-03", "2025-04", "2025-05", "2025-06", "2025-07", "2025-08", "2025-09", "2025-10"}
	for i, m := range months {
		txns = append(txns,
			tx(int64(i*2+1), m+"-10", CategoryFood, GroupPersonal, -1000),
			tx(int64(i*2+2), m+"-20", CategoryOther, GroupPersonal, 2500),
		)
	}

	points := MonthlyEvolution(txns, now, 6)
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if points[0].Month != "2025-05" || points[5].Month != "2025-10" {
		t.Fatalf("window bounds wrong: first=%s last=%s", points[0].Month, points[5].Month)
	}
	for _, p := range points {
		if p.Income != 2500 || p.Expense != 1000 {
			t.Fatalf("month %s: income=%d expense=%d", p.Month, p.Income, p.Expense)
		}
	}
}

func TestMonthlyEvolutionIgnoresFilter(t *testing.T) {
	// The evolution is always computed over the full store, so a record in
	// a month outside any active filter still shows up in its own bucket.
	now := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	txns := []Transaction{
		tx(1, "2025-09-01", CategoryFood, GroupPersonal, -700),
	}

	filtered, err := Apply(txns, NewCriteria("2025-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 0 {
		t.Fatalf("filter should exclude the record")
	}

	points := MonthlyEvolution(txns, now, 2)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Month != "2025-09" || points[0].Expense != 700 {
		t.Fatalf("september bucket wrong: %+v", points[0])
	}
}

func TestMonthlyEvolutionEmptyMonths(t *testing.T) {
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	points := MonthlyEvolution(nil, now, 3)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Income != 0 || p.Expense != 0 {
			t.Fatalf("empty store must yield zero buckets: %+v", p)
		}
	}
}

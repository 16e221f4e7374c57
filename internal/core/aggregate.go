package core

import "time"

type (
	// Totals is the derived summary over a filtered transaction set.
	// Income is the sum of positive amounts, Expense the sum of negative
	// amounts (kept negative), Net = Income + Expense and Average =
	// Net / Count, or zero for an empty set.
	Totals struct {
		Income       int64
		Expense      int64
		Net          int64
		Average      int64
		Count        int
		IncomeCount  int
		ExpenseCount int
	}

	// EvolutionPoint is one month of the income/expense trend. Expense is
	// reported as an absolute value, matching how trend charts plot it.
	EvolutionPoint struct {
		Month   MonthKey
		Label   string
		Income  int64
		Expense int64
	}
)

// ComputeTotals derives income, expense, net and average from a transaction
// set. Pure: the same input always yields the same Totals.
func ComputeTotals(txns []Transaction) Totals {
	var t Totals
	for _, tx := range txns {
		if tx.Amount.IsIncome() {
			t.Income += tx.Amount.Cents
			t.IncomeCount++
		} else {
			t.Expense += tx.Amount.Cents
			t.ExpenseCount++
		}
	}
	t.Count = len(txns)
	t.Net = t.Income + t.Expense
	if t.Count > 0 {
		t.Average = t.Net / int64(t.Count)
	}
	return t
}

// CountsByCategory returns how many transactions fall in each category.
// Categories absent from the input are absent from the map.
func CountsByCategory(txns []Transaction) map[Category]int {
	out := make(map[Category]int)
	for _, t := range txns {
		out[t.Category]++
	}
	return out
}

// CountsByGroup returns how many transactions fall in each group.
func CountsByGroup(txns []Transaction) map[Group]int {
	out := make(map[Group]int)
	for _, t := range txns {
		out[t.Group]++
	}
	return out
}

// ExpenseSumsByCategory sums the absolute cents of expense transactions per
// category, feeding the expense breakdown chart.
func ExpenseSumsByCategory(txns []Transaction) map[Category]int64 {
	out := make(map[Category]int64)
	for _, t := range txns {
		if t.Amount.IsExpense() {
			out[t.Category] += -t.Amount.Cents
		}
	}
	return out
}

// IncomeSumsByCategory sums the cents of income transactions per category.
func IncomeSumsByCategory(txns []Transaction) map[Category]int64 {
	out := make(map[Category]int64)
	for _, t := range txns {
		if t.Amount.IsIncome() {
			out[t.Category] += t.Amount.Cents
		}
	}
	return out
}

// DistinctCategories returns the cardinality of the set of categories
// appearing in the input.
func DistinctCategories(txns []Transaction) int {
	seen := make(map[Category]struct{})
	for _, t := range txns {
		seen[t.Category] = struct{}{}
	}
	return len(seen)
}

// DistinctGroups returns the cardinality of the set of groups appearing in
// the input.
func DistinctGroups(txns []Transaction) int {
	seen := make(map[Group]struct{})
	for _, t := range txns {
		seen[t.Group] = struct{}{}
	}
	return len(seen)
}

// MonthlyEvolution computes the income/expense trend for the window of
// calendar months ending at the month of now, oldest first. It always scans
// the full unfiltered set: the trend stays continuous while the active
// filter changes.
func MonthlyEvolution(txns []Transaction, now time.Time, window int) []EvolutionPoint {
	if window < 1 {
		return nil
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]EvolutionPoint, 0, window)
	for i := window - 1; i >= 0; i-- {
		month := MonthKeyOf(first.AddDate(0, -i, 0))
		p := EvolutionPoint{Month: month, Label: month.Label()}
		for _, t := range txns {
			if t.Date.MonthKey() != month {
				continue
			}
			if t.Amount.IsIncome() {
				p.Income += t.Amount.Cents
			} else {
				p.Expense += -t.Amount.Cents
			}
		}
		points = append(points, p)
	}
	return points
}

package core

import (
	"errors"
	"testing"
)

func tx(id int64, date string, cat Category, grp Group, cents int64) Transaction {
	d, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return Transaction{
		ID:          id,
		Date:        d,
		Description: "tx",
		Category:    cat,
		Group:       grp,
		Amount:      Money{Cents: cents},
	}
}

func TestApplySingleRecordMonthMatch(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-25", CategoryEducation, GroupBusiness, -114300),
	}

	got, err := Apply(txns, NewCriteria("2025-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected the single record, got %v", got)
	}

	got, err = Apply(txns, NewCriteria("2025-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for other month, got %v", got)
	}
}

func TestApplyCategoryAndGroup(t *testing.T) {
	txns := []Transaction{
		tx(1, "2025-10-01", CategoryFood, GroupPersonal, -500),
		tx(2, "2025-10-02", CategoryTransport, GroupPersonal, -300),
		tx(3, "2025-10-03", CategoryFood, GroupFamily, -800),
		tx(4, "2025-09-30", CategoryFood, GroupPersonal, -200),
	}

	cases := []struct {
		name string
		c    Criteria
		ids  []int64
	}{
		{"all", NewCriteria("2025-10"), []int64{1, 2, 3}},
		{"category", Criteria{Month: "2025-10", Category: "Food", Group: FilterAll}, []int64{1, 3}},
		{"group", Criteria{Month: "2025-10", Category: FilterAll, Group: "Personal"}, []int64{1, 2}},
		{"both", Criteria{Month: "2025-10", Category: "Food", Group: "Family"}, []int64{3}},
		{"no match", Criteria{Month: "2025-10", Category: "Health", Group: FilterAll}, nil},
	}
	for _, tc := range cases {
		got, err := Apply(txns, tc.c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if len(got) != len(tc.ids) {
			t.Fatalf("%s: expected %d results, got %d", tc.name, len(tc.ids), len(got))
		}
		for i, id := range tc.ids {
			if got[i].ID != id {
				t.Fatalf("%s: position %d expected id %d, got %d", tc.name, i, id, got[i].ID)
			}
		}
	}
}

// The filter result must be a subsequence of the input: relative order is
// preserved and no record appears that was not in the input.
func TestApplyPreservesOrder(t *testing.T) {
	txns := []Transaction{
		tx(9, "2025-10-05", CategoryFood, GroupPersonal, -100),
		tx(2, "2025-10-01", CategoryFood, GroupPersonal, -100),
		tx(7, "2025-10-09", CategoryFood, GroupPersonal, -100),
	}
	got, err := Apply(txns, NewCriteria("2025-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{9, 2, 7}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order not preserved: %v", got)
		}
	}
}

func TestApplyInvalidFilter(t *testing.T) {
	txns := []Transaction{tx(1, "2025-10-25", CategoryFood, GroupPersonal, -100)}

	bad := []Criteria{
		{Month: "2025-13", Category: FilterAll, Group: FilterAll},
		{Month: "oops", Category: FilterAll, Group: FilterAll},
		{Month: "", Category: FilterAll, Group: FilterAll},
		{Month: "2025-10", Category: "Groceries", Group: FilterAll},
		{Month: "2025-10", Category: FilterAll, Group: "Work"},
	}
	for _, c := range bad {
		if _, err := Apply(txns, c); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("%+v expected ErrInvalidFilter, got %v", c, err)
		}
	}
}

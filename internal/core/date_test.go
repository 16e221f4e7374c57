package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		key string
	}{
		{"2025-10-25", true, "2025-10-25"},
		{"2024-02-29", true, "2024-02-29"}, // leap day
		{"2025-02-30", false, ""},
		{"2025-13-01", false, ""},
		{"25/10/2025", false, ""},
		{"", false, ""},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || d.Key() != tc.key {
				t.Fatalf("%q: key=%q err=%v", tc.in, d.Key(), err)
			}
		} else {
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
			}
		}
	}
}

func TestDateMonthKey(t *testing.T) {
	d := NewDate(2025, 10, 25)
	if d.MonthKey() != "2025-10" {
		t.Fatalf("unexpected month key %q", d.MonthKey())
	}
	if d.Key() != "2025-10-25" {
		t.Fatalf("unexpected key %q", d.Key())
	}
}

func TestParseMonthKey(t *testing.T) {
	if _, err := ParseMonthKey("2025-10"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, in := range []string{"2025-13", "2025", "10-2025", "2025-1", ""} {
		if _, err := ParseMonthKey(in); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("%q expected ErrInvalidFilter, got %v", in, err)
		}
	}
}

func TestMonthKeyLabel(t *testing.T) {
	if got := MonthKey("2025-10").Label(); got != "Oct/25" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

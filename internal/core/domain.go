package core

import (
	"errors"
	"strings"
)

const (
	CategoryEducation     Category = "Education"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
	CategoryUtilities     Category = "Utilities"
	CategoryOther         Category = "Other"
)

const (
	GroupPersonal   Group = "Personal"
	GroupBusiness   Group = "Business"
	GroupFamily     Group = "Family"
	GroupInvestment Group = "Investment"
)

type (
	Category string

	Group string

	// Transaction is a single ledger entry. Records are immutable once
	// stored; an edit is modeled as remove followed by add.
	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Category    Category
		Group       Group
		Amount      Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidGroup     = errors.New("invalid group")
	ErrEmptyDescription = errors.New("empty description")
)

// Categories returns the closed set of valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryEducation,
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryHealth,
		CategoryShopping,
		CategoryUtilities,
		CategoryOther,
	}
}

// Groups returns the closed set of valid groups in display order.
func Groups() []Group {
	return []Group{
		GroupPersonal,
		GroupBusiness,
		GroupFamily,
		GroupInvestment,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryEducation, CategoryFood, CategoryTransport, CategoryEntertainment,
		CategoryHealth, CategoryShopping, CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

func (g Group) Valid() bool {
	switch g {
	case GroupPersonal, GroupBusiness, GroupFamily, GroupInvestment:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if !t.Group.Valid() {
		return ErrInvalidGroup
	}
	return nil
}

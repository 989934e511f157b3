package core

import (
	"errors"
	"strings"
)

// Kind distinguishes income from expense records. The remote store carries
// the localized labels; Kind is the canonical form inside the ledger.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	incomeLabel  = "收入"
	expenseLabel = "支出"
)

var (
	ErrInvalidKind   = errors.New("invalid record kind")
	ErrEmptyCategory = errors.New("empty category")
)

// WireLabel returns the localized label used by the remote store.
func (k Kind) WireLabel() string {
	if k == Income {
		return incomeLabel
	}
	return expenseLabel
}

// KindFromLabel maps a remote label to a Kind. Anything that is not the
// income label counts as expense, matching the remote store's convention.
func KindFromLabel(label string) Kind {
	switch strings.TrimSpace(label) {
	case incomeLabel, string(Income):
		return Income
	default:
		return Expense
	}
}

func (k Kind) Validate() error {
	if k != Income && k != Expense {
		return ErrInvalidKind
	}
	return nil
}

// Record is one income or expense transaction. Records are flat and
// independent; the ledger owns the collection and replaces records wholesale
// keyed on ID (no partial patches).
type Record struct {
	ID       int64     `json:"id"`
	Date     CivilDate `json:"date"`
	Kind     Kind      `json:"type"`
	Category string    `json:"category"`
	Amount   Money     `json:"amount"`
	Note     string    `json:"note,omitempty"`
}

// Validate enforces the entry-time invariants: a real calendar date, a known
// kind, a category and a strictly positive amount. Records ingested from the
// remote store bypass this (freeform categories must be tolerated there).
func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

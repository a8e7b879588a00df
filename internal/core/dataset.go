package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type (
	// Entry is a single labelled amount of an aggregate dataset.
	Entry struct {
		Label  string
		Amount float64
	}

	// Dataset is an ordered label -> amount mapping computed upstream
	// (totals per category, month or payment method). Iteration order is
	// display order and labels are unique. The zero value is an empty dataset.
	Dataset struct {
		entries []Entry
	}
)

var (
	ErrEmptyLabel     = errors.New("empty label")
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrInvalidAmount  = errors.New("invalid amount")
)

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Label) == "" {
		return ErrEmptyLabel
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

// NewDataset builds a dataset keeping the given order. It fails on the first
// invalid entry or repeated label.
func NewDataset(entries ...Entry) (Dataset, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("entry %d (%q): %w", i, e.Label, err)
		}
		if _, dup := seen[e.Label]; dup {
			return Dataset{}, fmt.Errorf("%w: %q", ErrDuplicateLabel, e.Label)
		}
		seen[e.Label] = struct{}{}
		out = append(out, e)
	}
	return Dataset{entries: out}, nil
}

// MustDataset is like NewDataset but panics on error. Meant for static tables and tests.
func MustDataset(entries ...Entry) Dataset {
	d, err := NewDataset(entries...)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of entries.
func (d Dataset) Len() int {
	return len(d.entries)
}

// IsEmpty reports whether the dataset has no entries.
func (d Dataset) IsEmpty() bool {
	return len(d.entries) == 0
}

// Labels returns the labels in display order.
func (d Dataset) Labels() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Label
	}
	return out
}

// Amounts returns the amounts in the same order as Labels.
func (d Dataset) Amounts() []float64 {
	out := make([]float64, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Amount
	}
	return out
}

// Entries returns a copy of the entries.
func (d Dataset) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Amount returns the amount stored under label.
func (d Dataset) Amount(label string) (float64, bool) {
	for _, e := range d.entries {
		if e.Label == label {
			return e.Amount, true
		}
	}
	return 0, false
}

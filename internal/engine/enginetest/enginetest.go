// Package enginetest provides fixtures shared by the engine tests.
package enginetest

import (
	"testing"

	"spese-charts/internal/chart"
	"spese-charts/internal/core"
	"spese-charts/internal/page"
)

// Page returns an in-memory page with the given mounts.
func Page(t testing.TB, keys ...string) *page.Page {
	t.Helper()
	mounts := make([]page.MountSpec, 0, len(keys))
	for _, k := range keys {
		mounts = append(mounts, page.MountSpec{Key: k})
	}
	p, err := page.NewMemory(mounts, 640, 360)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	return p
}

// Inputs is a small dashboard with every dataset populated.
func Inputs() chart.Inputs {
	return chart.Inputs{
		Category: core.MustDataset(
			core.Entry{Label: "Food", Amount: 120.5},
			core.Entry{Label: "Travel", Amount: 75},
		),
		Month: core.MustDataset(
			core.Entry{Label: "2024-04", Amount: 80},
			core.Entry{Label: "2024-05", Amount: 195.5},
		),
		Payment: core.MustDataset(
			core.Entry{Label: "bank_transfer", Amount: 200},
			core.Entry{Label: "cash", Amount: 50},
		),
	}
}

// Case is a named dashboard for table-driven engine tests.
type Case struct {
	Name   string
	Inputs chart.Inputs
}

// EdgeCases are dashboards real pages produce that the happy-path fixture
// does not: one month of history, refunds, zero totals and labels carrying
// markup characters.
func EdgeCases() []Case {
	return []Case{
		{"single entry", chart.Inputs{
			Category: core.MustDataset(core.Entry{Label: "Food", Amount: 10}),
			Month:    core.MustDataset(core.Entry{Label: "2024-01", Amount: 10}),
			Payment:  core.MustDataset(core.Entry{Label: "cash", Amount: 10}),
		}},
		{"negative amounts", chart.Inputs{
			Category: core.MustDataset(
				core.Entry{Label: "Refunds", Amount: -40},
				core.Entry{Label: "Food", Amount: 25},
			),
			Month: core.MustDataset(
				core.Entry{Label: "2024-01", Amount: -15},
				core.Entry{Label: "2024-02", Amount: -5},
			),
			Payment: core.MustDataset(core.Entry{Label: "credit_card", Amount: -20}),
		}},
		{"all zero", chart.Inputs{
			Category: core.MustDataset(
				core.Entry{Label: "Food", Amount: 0},
				core.Entry{Label: "Travel", Amount: 0},
			),
			Month: core.MustDataset(
				core.Entry{Label: "2024-01", Amount: 0},
				core.Entry{Label: "2024-02", Amount: 0},
			),
			Payment: core.MustDataset(core.Entry{Label: "cash", Amount: 0}),
		}},
		{"markup labels", chart.Inputs{
			Category: core.MustDataset(
				core.Entry{Label: "R&D <x>", Amount: 10},
				core.Entry{Label: "Food & Drinks", Amount: 5},
			),
			Month: core.MustDataset(
				core.Entry{Label: "Q1 <draft>", Amount: 10},
				core.Entry{Label: `"Q2" & 'Q3'`, Amount: 20},
			),
			Payment:  core.MustDataset(core.Entry{Label: "cash_&_card", Amount: 7}),
			Currency: core.ResolveCurrency("<$>"),
		}},
	}
}

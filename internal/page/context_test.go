package page

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spese-charts/internal/chart"
	"spese-charts/internal/core"
)

const sampleYAML = `
meta:
  currency: "€"
categoryData:
  Travel: 75
  Food: 120.5
  Rent: "900,00"
monthData: {}
paymentData:
  bank_transfer: 200
mounts:
  categoryChart: {width: 640, height: 320}
  paymentChart:
`

func TestParseYAMLKeepsOrder(t *testing.T) {
	ctx, err := Parse("home", []byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ctx.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", ctx.Warnings)
	}
	if got := strings.Join(ctx.Inputs.Category.Labels(), ","); got != "Travel,Food,Rent" {
		t.Fatalf("category order = %s", got)
	}
	if v, _ := ctx.Inputs.Category.Amount("Rent"); v != 900 {
		t.Fatalf("Rent = %v", v)
	}
	if !ctx.Inputs.Month.IsEmpty() {
		t.Fatalf("month should be empty")
	}
	if ctx.Inputs.Currency.Symbol() != "€" {
		t.Fatalf("currency = %q", ctx.Inputs.Currency.Symbol())
	}
	if len(ctx.Mounts) != 2 || ctx.Mounts[0].Width != 640 || ctx.Mounts[1].Key != chart.MountPayment {
		t.Fatalf("mounts = %+v", ctx.Mounts)
	}
}

func TestParseJSON(t *testing.T) {
	data := `{"categoryData": {"Food": 120.5, "Travel": 75}, "mounts": ["categoryChart"]}`
	ctx, err := Parse("dash", []byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := ctx.Inputs.Category.Amounts(); len(got) != 2 || got[0] != 120.5 || got[1] != 75 {
		t.Fatalf("amounts = %v", got)
	}
	if ctx.Inputs.Currency.Symbol() != core.DefaultCurrencySymbol {
		t.Fatalf("currency should fall back, got %q", ctx.Inputs.Currency.Symbol())
	}
	if len(ctx.Mounts) != 1 || ctx.Mounts[0].Key != chart.MountCategory {
		t.Fatalf("mounts = %+v", ctx.Mounts)
	}
}

func TestParseMalformedDatasetsBecomeEmpty(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"list", "categoryData: [1, 2]"},
		{"scalar", "categoryData: 12"},
		{"text value", "categoryData: {Food: lots}"},
		{"nested value", "categoryData: {Food: {a: 1}}"},
		{"duplicate key", "categoryData: {Food: 1, Food: 2}"},
		{"infinite", "categoryData: {Food: .inf}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, err := Parse("p", []byte(tc.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !ctx.Inputs.Category.IsEmpty() {
				t.Fatalf("expected empty dataset")
			}
			if len(ctx.Warnings) != 1 || !strings.HasPrefix(ctx.Warnings[0], KeyCategory) {
				t.Fatalf("warnings = %v", ctx.Warnings)
			}
		})
	}
}

func TestParseMissingEverything(t *testing.T) {
	for _, doc := range []string{"", "other: 1", "categoryData: null"} {
		ctx, err := Parse("p", []byte(doc))
		if err != nil {
			t.Fatalf("Parse(%q): %v", doc, err)
		}
		if !ctx.Inputs.Category.IsEmpty() || !ctx.Inputs.Payment.IsEmpty() || len(ctx.Warnings) != 0 {
			t.Fatalf("Parse(%q) = %+v", doc, ctx)
		}
		if len(ctx.Mounts) != 3 {
			t.Fatalf("default mounts = %+v", ctx.Mounts)
		}
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	for _, doc := range []string{
		"- just\n- a list",
		"categoryData: {",
		"mounts: [categoryChart, categoryChart]",
		"mounts: {categoryChart: {width: -1}}",
		"mounts: 3",
	} {
		if _, err := Parse("p", []byte(doc)); !errors.Is(err, ErrInvalidContext) {
			t.Fatalf("Parse(%q) err = %v", doc, err)
		}
	}
}

func TestLoadUsesFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "april.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ctx.Name != "april" {
		t.Fatalf("name = %q", ctx.Name)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

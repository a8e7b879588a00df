// Package core provides the aggregate dataset model and money formatting.
//
// This file contains the currency symbol resolution and the formatting rules
// used for every monetary string shown on a chart (tooltips, legends, ticks).
package core

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is used when the page carries no currency metadata.
const DefaultCurrencySymbol = "₹"

// Currency is the symbol resolved once per page. The zero value behaves as
// DefaultCurrencySymbol.
type Currency struct {
	symbol string
}

// ResolveCurrency returns the currency for the given page metadata value.
// Blank metadata falls back to DefaultCurrencySymbol.
func ResolveCurrency(meta string) Currency {
	meta = strings.TrimSpace(meta)
	if meta == "" {
		return Currency{symbol: DefaultCurrencySymbol}
	}
	return Currency{symbol: meta}
}

// Symbol returns the currency glyph.
func (c Currency) Symbol() string {
	if c.symbol == "" {
		return DefaultCurrencySymbol
	}
	return c.symbol
}

// Format renders an amount as symbol + value fixed to two decimals. The
// exact binary value is rounded half away from zero, so ties such as 0.125
// round up while 1.005 (stored as 1.00499...) rounds down.
//
// Examples:
//
//	Format(120.5) -> "₹120.50"
//	Format(200)   -> "₹200.00"
//	Format(0.125) -> "₹0.13"
func (c Currency) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return c.Symbol() + strconv.FormatFloat(amount, 'f', 2, 64)
	}
	return c.Symbol() + exactDecimal(amount).StringFixed(2)
}

// exactDecimal converts v without rounding: v is m*2^e, which equals
// m*5^-e*10^e when e is negative.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	m := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(m.Mul(m, five), int32(exp))
}

// Tick renders an axis tick value: symbol + shortest decimal form.
func (c Currency) Tick(v float64) string {
	return c.Symbol() + strconv.FormatFloat(normalizeZero(v), 'f', -1, 64)
}

// Label substitutes every {currency} placeholder in tmpl with the symbol.
func (c Currency) Label(tmpl string) string {
	return strings.ReplaceAll(tmpl, "{currency}", c.Symbol())
}

// ParseAmount converts a decimal string to a float amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional leading minus sign (refunds). Thousands separators are not supported.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || strings.Count(digits, ".") > 1 {
		return 0, ErrInvalidAmount
	}
	for _, r := range digits {
		if r != '.' && !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

func normalizeZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

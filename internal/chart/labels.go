package chart

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Labeler maps a dataset key to its display label.
type Labeler func(string) string

// Verbatim returns keys unchanged.
func Verbatim(key string) string { return key }

// PaymentMethod formats a payment method key for display: every underscore
// becomes a space and the first letter is upper-cased.
//
//	bank_transfer -> Bank transfer
//	credit_card   -> Credit card
func PaymentMethod(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

func (l Labeler) apply(key string) string {
	if l == nil {
		return key
	}
	return l(key)
}

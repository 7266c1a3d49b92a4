// Package money renders currency amounts for display.
package money

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats amounts in one currency under one locale's number rules.
type Formatter struct {
	code    string
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 code and a BCP 47 locale.
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	printer := message.NewPrinter(tag)
	return &Formatter{
		code:    unit.String(),
		symbol:  displaySymbol(printer.Sprint(currency.NarrowSymbol(unit))),
		printer: printer,
	}, nil
}

// displaySymbol separates alphabetic symbols such as "CHF" from the amount.
func displaySymbol(symbol string) string {
	last, _ := utf8.DecodeLastRuneInString(symbol)
	if unicode.IsLetter(last) {
		return symbol + " "
	}
	return symbol
}

// Must is NewFormatter for static configuration.
func Must(code, locale string) *Formatter {
	f, err := NewFormatter(code, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO currency code.
func (f *Formatter) Code() string {
	return f.code
}

// Format renders amount with two decimals, locale grouping and the currency symbol.
// 450 -> "£450.00", -12.5 -> "-£12.50".
func (f *Formatter) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	return sign + f.symbol + f.printer.Sprintf("%.2f", amount)
}

var gbp = Must("GBP", "en-GB")

// FormatGBP formats amount as pounds sterling under en-GB rules.
func FormatGBP(amount float64) string {
	return gbp.Format(amount)
}

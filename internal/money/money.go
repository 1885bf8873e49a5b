// Package money formats currency amounts for chart axes and terminal tables.
package money

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders whole currency units with locale grouping, e.g.
// "$1,221,782,049" for en-US. The zero value is not usable; build one with
// NewFormatter.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter validates the locale and ISO 4217 code. An empty symbol falls
// back to the ISO code followed by a space.
func NewFormatter(locale, code, symbol string) (Formatter, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return Formatter{}, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return Formatter{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	if symbol == "" {
		symbol = unit.String() + " "
	}
	return Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}, nil
}

// Format renders value rounded to whole units. The position argument is the
// tick index and is ignored; it keeps the signature usable as a tick
// labeller. NaN and infinities are rendered without a symbol.
func (f Formatter) Format(value float64, _ int) string {
	if f.printer == nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%.0f", value)
	}
	rounded := math.Round(value)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	// 2^63 is the first magnitude int64 cannot hold.
	if rounded >= 1<<63 {
		return sign + f.symbol + f.printer.Sprintf("%.0f", rounded)
	}
	return sign + f.symbol + f.printer.Sprintf("%d", int64(rounded))
}

// FormatInt is Format for exact integer amounts.
func (f Formatter) FormatInt(value int64) string {
	if f.printer == nil {
		return fmt.Sprint(value)
	}
	sign := ""
	magnitude := uint64(value)
	if value < 0 {
		sign = "-"
		magnitude = uint64(-(value + 1)) + 1
	}
	return sign + f.symbol + f.printer.Sprintf("%d", magnitude)
}

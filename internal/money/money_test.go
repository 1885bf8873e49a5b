package money_test

import (
	"math"
	"strings"
	"testing"

	"boxoffice/internal/money"
)

func mustFormatter(t *testing.T, locale, code, symbol string) money.Formatter {
	t.Helper()
	f, err := money.NewFormatter(locale, code, symbol)
	if err != nil {
		t.Fatalf("NewFormatter(%q, %q, %q): %v", locale, code, symbol, err)
	}
	return f
}

func TestFormatUSD(t *testing.T) {
	f, err := money.NewFormatter("en-US", "USD", "$")
	if err != nil {
		t.Fatalf("NewFormatter returned error: %v", err)
	}
	cases := map[float64]string{
		0:             "$0",
		999:           "$999",
		1221782049:    "$1,221,782,049",
		1221782049.6:  "$1,221,782,050",
		-237000000:    "-$237,000,000",
		2544505847.49: "$2,544,505,847",
	}
	for value, want := range cases {
		if got := f.Format(value, 0); got != want {
			t.Fatalf("Format(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestFormatIgnoresPosition(t *testing.T) {
	f := mustFormatter(t, "en-US", "USD", "$")
	if f.Format(1000, 0) != f.Format(1000, 7) {
		t.Fatal("expected position to have no effect")
	}
}

func TestFormatIntMatchesFormat(t *testing.T) {
	f := mustFormatter(t, "en-US", "USD", "$")
	if got := f.FormatInt(-237000000); got != "-$237,000,000" {
		t.Fatalf("unexpected FormatInt output %q", got)
	}
	if got := f.FormatInt(2781505847); got != "$2,781,505,847" {
		t.Fatalf("unexpected FormatInt output %q", got)
	}
}

func TestFormatterUsesLocaleGrouping(t *testing.T) {
	f := mustFormatter(t, "de-DE", "EUR", "€")
	if got := f.Format(1234567, 0); got != "€1.234.567" {
		t.Fatalf("expected German grouping, got %q", got)
	}
}

func TestNewFormatterDefaultsSymbolToISOCode(t *testing.T) {
	f := mustFormatter(t, "en-US", "GBP", "")
	if got := f.Format(1500, 0); got != "GBP 1,500" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNewFormatterRejectsBadInput(t *testing.T) {
	if _, err := money.NewFormatter("en-US", "DOLLARS", "$"); err == nil {
		t.Fatal("expected error for bad currency code")
	}
	if _, err := money.NewFormatter("!!", "USD", "$"); err == nil {
		t.Fatal("expected error for bad locale")
	}
}

func TestFormatBeyondInt64Range(t *testing.T) {
	f := mustFormatter(t, "en-US", "USD", "$")
	cases := map[float64]string{
		1e19:  "$10,000,000,000,000,000,000",
		-1e19: "-$10,000,000,000,000,000,000",
	}
	for value, want := range cases {
		if got := f.Format(value, 0); got != want {
			t.Fatalf("Format(%v) = %q, want %q", value, got, want)
		}
	}
	if got := f.Format(math.MaxInt64, 0); strings.Contains(got, "-") || !strings.HasPrefix(got, "$9,223,372,036,854,775,") {
		t.Fatalf("unexpected output near int64 limit %q", got)
	}
}

func TestFormatNonFiniteValues(t *testing.T) {
	f := mustFormatter(t, "en-US", "USD", "$")
	if got := f.Format(math.Inf(1), 0); got != "+Inf" {
		t.Fatalf("unexpected output for +Inf %q", got)
	}
	if got := f.Format(math.NaN(), 0); got != "NaN" {
		t.Fatalf("unexpected output for NaN %q", got)
	}
}

package output

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale groups digits the Indian way (1,00,000)
const DefaultLocale = "en-IN"

// CurrencyFormatter renders amounts for display. Amounts are rounded to whole
// units here and nowhere else; the engine always works at full precision.
type CurrencyFormatter struct {
	Symbol  string
	printer *message.Printer
}

// NewCurrencyFormatter creates a formatter for a BCP 47 locale such as
// "en-IN" or "hi-IN". Unparseable locales fall back to DefaultLocale.
func NewCurrencyFormatter(locale, symbol string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &CurrencyFormatter{Symbol: symbol, printer: message.NewPrinter(tag)}
}

// DefaultCurrency is the en-IN rupee formatter
func DefaultCurrency() *CurrencyFormatter {
	return NewCurrencyFormatter(DefaultLocale, "₹")
}

// Format renders a whole-unit amount with locale grouping, e.g. ₹16,607
func (c *CurrencyFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + c.Symbol + c.printer.Sprint(number.Decimal(rounded.IntPart(), number.Scale(0)))
}

// FormatPrecise renders an amount with two fraction digits
func (c *CurrencyFormatter) FormatPrecise(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + c.Symbol + c.printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
}

// FormatCurrency formats an amount with the default rupee formatter
func FormatCurrency(amount decimal.Decimal) string {
	return DefaultCurrency().Format(amount)
}

// FormatPercentage formats a percentage with two decimals
func FormatPercentage(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// ParseAmount accepts user-typed amounts with grouping separators, spaces
// or a leading currency symbol, as in "₹1,00,000".
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '_', '₹', '$':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	return decimal.NewFromString(cleaned)
}

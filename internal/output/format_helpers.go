package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats a decimal as whole US dollars with digit grouping,
// e.g. $1,234,567 or -$5,000.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return "-$" + usPrinter.Sprintf("%d", rounded.Neg().IntPart())
	}
	return "$" + usPrinter.Sprintf("%d", rounded.IntPart())
}

// FormatRate formats a percentage value with one decimal, e.g. 12.3%.
func FormatRate(pct decimal.Decimal) string { return pct.StringFixed(1) + "%" }

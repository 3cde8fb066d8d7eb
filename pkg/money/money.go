package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount in paise as rupees, e.g. "₹ 1,499.00".
func FormatINR(paise int64) string {
	amount := currency.INR.Amount(float64(paise) / 100)
	return printer.Sprint(currency.Symbol(amount))
}

package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as Indonesian rupiah without decimals,
// e.g. 15000 -> "Rp 15.000". Rupiah amounts are whole integers everywhere
// in this system.
func FormatIDR(amount int64) string {
	return printer.Sprintf("Rp %v", number.Decimal(amount))
}

// FormatNumber renders a bare grouped number, e.g. 15000 -> "15.000".
func FormatNumber(amount int64) string {
	return printer.Sprintf("%v", number.Decimal(amount))
}

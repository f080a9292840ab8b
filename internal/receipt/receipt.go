// Package receipt renders transactions and period reports as monospace text
// sized for 58mm thermal paper.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/service"
	"kopdes-pos/pkg/money"
)

const width = 32

var header = []string{
	"KOPDES MERAH PUTIH",
	"PENFUI TIMUR",
	"Jln. Matani Raya",
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// kv lays out a label on the left and a value flush right.
func kv(label, value string) string {
	gap := width - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

func divider() string {
	return strings.Repeat("-", width)
}

func formatDate(t time.Time) string {
	return t.Format("02-01-2006 15:04")
}

// Render produces the printable sales receipt for a transaction.
func Render(t *model.Transaction) string {
	var b strings.Builder
	writeln := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	for _, line := range header {
		writeln(center(line))
	}
	writeln(divider())
	writeln(formatDate(t.Date))
	writeln("No: " + t.ShortID())
	writeln("Kasir: " + t.CashierName)
	if t.CustomerName != "" && t.CustomerName != model.WalkInCustomerName {
		writeln("Anggota: " + t.CustomerName)
	}
	writeln(divider())

	for _, item := range t.Items {
		writeln(item.Name)
		qty := fmt.Sprintf("%dx @%s", item.Quantity, money.FormatNumber(item.SellPrice))
		writeln(kv(qty, money.FormatNumber(item.SellPrice*int64(item.Quantity))))
	}
	writeln(divider())

	writeln(kv("Total", money.FormatIDR(t.Total)))
	writeln(kv(string(t.PaymentMethod), money.FormatIDR(t.AmountPaid)))
	writeln(kv("Kembali", money.FormatIDR(t.Change)))
	writeln(divider())
	writeln(center("Terima kasih telah"))
	writeln(center("berbelanja!"))

	return b.String()
}

// RenderPeriodReport produces the printable daily / period summary slip.
func RenderPeriodReport(summary service.PeriodSummary, start, end time.Time) string {
	var b strings.Builder
	writeln := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	for _, line := range header {
		writeln(center(line))
	}
	writeln(divider())
	writeln(center("LAPORAN PERIODE"))

	sameDay := start.Format("2006-01-02") == end.Format("2006-01-02")
	if sameDay {
		writeln(center(start.Format("02-01-2006")))
	} else {
		writeln(center(start.Format("02-01-2006") + " s/d " + end.Format("02-01-2006")))
	}
	writeln(divider())

	writeln(kv("Omzet", money.FormatIDR(summary.TotalRevenue)))
	writeln(kv("HPP", money.FormatIDR(summary.TotalCost)))
	writeln(kv("Laba Kotor", money.FormatIDR(summary.GrossProfit)))
	writeln(divider())
	writeln("Rincian:")
	writeln(kv("Tunai", money.FormatIDR(summary.CashRevenue)))
	writeln(kv("Non-Tunai", money.FormatIDR(summary.NonCashRevenue)))

	return b.String()
}

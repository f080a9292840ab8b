package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/receipt"
	"kopdes-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports *service.ReportService
	cache   *readmodel.Cache
}

func NewReportHandler(reports *service.ReportService, cache *readmodel.Cache) *ReportHandler {
	return &ReportHandler{reports: reports, cache: cache}
}

func (h *ReportHandler) periodFromQuery(c *fiber.Ctx) (time.Time, time.Time) {
	now := time.Now()
	start := startOfDay(parseDay(c.Query("start"), now))
	end := endOfDay(parseDay(c.Query("end"), now))
	return start, end
}

func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	start, end := h.periodFromQuery(c)
	summary := h.reports.PeriodSummary(start, end)
	return c.JSON(fiber.Map{
		"start":   start.Format("2006-01-02"),
		"end":     end.Format("2006-01-02"),
		"summary": summary,
	})
}

// SummarySlip renders the period summary as a printable 58mm slip.
func (h *ReportHandler) SummarySlip(c *fiber.Ctx) error {
	start, end := h.periodFromQuery(c)
	summary := h.reports.PeriodSummary(start, end)

	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(receipt.RenderPeriodReport(summary, start, end))
}

func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}
	return c.JSON(h.reports.TopProducts(limit))
}

func (h *ReportHandler) MemberRanking(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year", ""))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}
	return c.JSON(fiber.Map{
		"year":    year,
		"ranking": h.reports.MemberRanking(year),
	})
}

func (h *ReportHandler) WeeklySales(c *fiber.Ctx) error {
	return c.JSON(h.reports.WeeklySales())
}

func (h *ReportHandler) CriticalStock(c *fiber.Ctx) error {
	return c.JSON(h.reports.CriticalStock())
}

func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.reports.Dashboard())
}

// --- CSV exports (read-only snapshots, column layout from the old reports) ---

func sendCSV(c *fiber.Ctx, fileName string, headers []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return respondError(c, err, "export CSV")
	}
	if err := w.WriteAll(rows); err != nil {
		return respondError(c, err, "export CSV")
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) ExportTransactionsCSV(c *fiber.Ctx) error {
	start, end := h.periodFromQuery(c)

	rows := [][]string{}
	for _, t := range h.cache.Transactions() {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		rows = append(rows, []string{
			t.ID.String(),
			t.Date.Format("2006-01-02 15:04"),
			t.CashierName,
			strconv.FormatInt(t.Total, 10),
			string(t.PaymentMethod),
			t.CustomerName,
		})
	}

	fileName := "transaksi_" + start.Format("2006-01-02") + "_to_" + end.Format("2006-01-02") + ".csv"
	headers := []string{"No. Transaksi", "Tanggal & Waktu", "Nama Kasir", "Total Belanja", "Metode Pembayaran", "Nama Pelanggan"}
	return sendCSV(c, fileName, headers, rows)
}

func (h *ReportHandler) ExportProductsCSV(c *fiber.Ctx) error {
	rows := [][]string{}
	for _, p := range h.cache.Products() {
		rows = append(rows, []string{
			p.SKU,
			p.Name,
			strconv.FormatInt(p.PurchasePrice, 10),
			strconv.FormatInt(p.SellPrice, 10),
			strconv.Itoa(p.Stock),
			p.Unit,
		})
	}

	fileName := "daftar_barang_" + time.Now().Format("2006-01-02") + ".csv"
	headers := []string{"SKU", "Nama Barang", "Harga Beli", "Harga Jual", "Stok", "Satuan"}
	return sendCSV(c, fileName, headers, rows)
}

func (h *ReportHandler) ExportStockLogsCSV(c *fiber.Ctx) error {
	typeFilter := c.Query("type")

	rows := [][]string{}
	for _, l := range h.cache.StockLogs() {
		if typeFilter != "" && string(l.Type) != typeFilter {
			continue
		}
		rows = append(rows, []string{
			l.Date.Format("2006-01-02 15:04"),
			string(l.Type),
			l.ProductName,
			strconv.Itoa(l.QuantityChange),
			strconv.Itoa(l.OldStock),
			strconv.Itoa(l.NewStock),
			l.Notes,
		})
	}

	fileName := "riwayat_stok_" + time.Now().Format("2006-01-02") + ".csv"
	headers := []string{"Tanggal", "Jenis", "Nama Barang", "Perubahan", "Stok Lama", "Stok Baru", "Keterangan"}
	return sendCSV(c, fileName, headers, rows)
}

func (h *ReportHandler) ExportMemberReportCSV(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year", ""))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}

	rows := [][]string{}
	for i, m := range h.reports.MemberRanking(year) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Name,
			strconv.Itoa(m.Count),
			strconv.FormatInt(m.Total, 10),
		})
	}

	fileName := "laporan_anggota_" + strconv.Itoa(year) + ".csv"
	headers := []string{"Peringkat", "Nama Anggota", "Jumlah Transaksi", "Total Belanja"}
	return sendCSV(c, fileName, headers, rows)
}

package service

import (
	"sort"
	"time"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"

	"github.com/google/uuid"
)

// Reporting is read-only: every figure is a deterministic fold over a
// read-model snapshot. The same snapshot always yields the same numbers.

type PeriodSummary struct {
	TotalRevenue     int64 `json:"total_revenue"`
	TotalCost        int64 `json:"total_cost"` // HPP: purchase price basis of the goods sold
	GrossProfit      int64 `json:"gross_profit"`
	CashRevenue      int64 `json:"cash_revenue"`
	NonCashRevenue   int64 `json:"non_cash_revenue"`
	TransactionCount int   `json:"transaction_count"`
}

type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type MemberSpending struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Total int64  `json:"total"`
}

type DailySales struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Total int64  `json:"total"`
}

type DashboardStats struct {
	TodayRevenue     int64 `json:"today_revenue"`
	TodayGrossProfit int64 `json:"today_gross_profit"`
	TodayCount       int   `json:"today_count"`
	TotalProducts    int   `json:"total_products"`
	CriticalStock    int   `json:"critical_stock"`
}

// CriticalStockThreshold is the stock level under which a product shows up
// on the restock list.
const CriticalStockThreshold = 10

type ReportService struct {
	cache *readmodel.Cache
}

func NewReportService(cache *readmodel.Cache) *ReportService {
	return &ReportService{cache: cache}
}

func (s *ReportService) PeriodSummary(start, end time.Time) PeriodSummary {
	return Summarize(s.cache.Transactions(), s.cache.Products(), start, end)
}

func (s *ReportService) TopProducts(limit int) []ProductSales {
	return TopProducts(s.cache.Transactions(), time.Now().AddDate(0, 0, -7), limit)
}

func (s *ReportService) MemberRanking(year int) []MemberSpending {
	return MemberRanking(s.cache.Transactions(), year)
}

func (s *ReportService) WeeklySales() []DailySales {
	return WeeklySales(s.cache.Transactions(), time.Now())
}

func (s *ReportService) CriticalStock() []model.Product {
	var out []model.Product
	for _, p := range s.cache.Products() {
		if p.Stock < CriticalStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

func (s *ReportService) Dashboard() DashboardStats {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	products := s.cache.Products()
	summary := Summarize(s.cache.Transactions(), products, start, end)

	critical := 0
	for _, p := range products {
		if p.Stock < CriticalStockThreshold {
			critical++
		}
	}

	return DashboardStats{
		TodayRevenue:     summary.TotalRevenue,
		TodayGrossProfit: summary.GrossProfit,
		TodayCount:       summary.TransactionCount,
		TotalProducts:    len(products),
		CriticalStock:    critical,
	}
}

// Summarize folds the transactions inside [start, end]. Cost basis joins the
// live catalog for purchase prices (a deleted product contributes zero cost,
// matching the original behavior).
func Summarize(transactions []model.Transaction, products []model.Product, start, end time.Time) PeriodSummary {
	purchasePrice := make(map[uuid.UUID]int64, len(products))
	for _, p := range products {
		purchasePrice[p.ID] = p.PurchasePrice
	}

	var summary PeriodSummary
	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		summary.TransactionCount++
		summary.TotalRevenue += t.Total
		for _, item := range t.Items {
			summary.TotalCost += purchasePrice[item.ProductID] * int64(item.Quantity)
		}
		if t.PaymentMethod == model.PaymentCash {
			summary.CashRevenue += t.Total
		}
	}
	summary.GrossProfit = summary.TotalRevenue - summary.TotalCost
	summary.NonCashRevenue = summary.TotalRevenue - summary.CashRevenue
	return summary
}

// TopProducts ranks items by quantity sold since the given time.
func TopProducts(transactions []model.Transaction, since time.Time, limit int) []ProductSales {
	quantities := make(map[string]int)
	for _, t := range transactions {
		if t.Date.Before(since) {
			continue
		}
		for _, item := range t.Items {
			quantities[item.Name] += item.Quantity
		}
	}

	ranked := make([]ProductSales, 0, len(quantities))
	for name, qty := range quantities {
		ranked = append(ranked, ProductSales{Name: name, Quantity: qty})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MemberRanking totals spending per customer name for one calendar year.
// Walk-in sales carry no member association and are excluded.
func MemberRanking(transactions []model.Transaction, year int) []MemberSpending {
	spending := make(map[string]*MemberSpending)
	for _, t := range transactions {
		if t.Date.Year() != year {
			continue
		}
		name := t.CustomerName
		if name == "" || name == model.WalkInCustomerName {
			continue
		}
		entry, ok := spending[name]
		if !ok {
			entry = &MemberSpending{Name: name}
			spending[name] = entry
		}
		entry.Count++
		entry.Total += t.Total
	}

	ranked := make([]MemberSpending, 0, len(spending))
	for _, entry := range spending {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// WeeklySales buckets revenue per day for the trailing 7 days (oldest first).
func WeeklySales(transactions []model.Transaction, now time.Time) []DailySales {
	days := make([]DailySales, 7)
	totals := make(map[string]int64)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		days[i] = DailySales{Date: day.Format("2006-01-02")}
	}
	for _, t := range transactions {
		totals[t.Date.Format("2006-01-02")] += t.Total
	}
	for i := range days {
		days[i].Total = totals[days[i].Date]
	}
	return days
}

package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/repository"
	"kopdes-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleItemRequest is one cart line. Name and price are NOT taken from the
// request; they are snapshotted from the catalog at sale time.
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type SaleRequest struct {
	Items         []SaleItemRequest   `json:"items"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	CustomerName  string              `json:"customer_name"`
	AmountPaid    int64               `json:"amount_paid"`
	Date          time.Time           `json:"date"` // boleh backdate
}

// SalesService is the transaction processor: it turns a cart into a sale
// document plus one ledger entry per line, written as a single atomic batch,
// and reverses sales with compensating entries.
type SalesService interface {
	RecordSale(req SaleRequest, cashierName string) (*model.Transaction, error)
	ReverseSale(id uuid.UUID, actor string) error
	Transactions() []model.Transaction
	FindTransaction(id uuid.UUID) (*model.Transaction, error)
}

type salesService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	logRepo         repository.StockLogRepository
	cache           *readmodel.Cache
	db              *gorm.DB
	hub             *ws.Hub
}

func NewSalesService(
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	logRepo repository.StockLogRepository,
	cache *readmodel.Cache,
	db *gorm.DB,
	hub *ws.Hub,
) SalesService {
	return &salesService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		logRepo:         logRepo,
		cache:           cache,
		db:              db,
		hub:             hub,
	}
}

func (s *salesService) RecordSale(req SaleRequest, cashierName string) (*model.Transaction, error) {
	// Semua validasi selesai sebelum menyentuh store.
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", ErrValidation)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, ErrValidation)
	}

	items := make([]model.TransactionItem, 0, len(req.Items))
	var total int64
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
		}
		product, ok := s.cache.FindProduct(line.ProductID)
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrNotFound)
		}
		// snapshot name & price at sale time
		items = append(items, model.TransactionItem{
			ProductID: product.ID,
			Name:      product.Name,
			SellPrice: product.SellPrice,
			Quantity:  line.Quantity,
		})
		total += product.SellPrice * int64(line.Quantity)
	}

	amountPaid := req.AmountPaid
	var change int64
	if req.PaymentMethod == model.PaymentCash {
		if amountPaid < total {
			return nil, fmt.Errorf("amount paid is less than total: %w", ErrValidation)
		}
		change = amountPaid - total
	} else {
		// non-cash is always exact
		amountPaid = total
		change = 0
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		customerName = model.WalkInCustomerName
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := model.Transaction{
		ID:            uuid.New(), // assigned up front so the logs can reference it
		Date:          date,
		Items:         items,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  customerName,
		AmountPaid:    amountPaid,
		Change:        change,
		CashierName:   cashierName,
	}

	var entries []model.StockLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.Create(tx, &transaction); err != nil {
			return err
		}
		for _, item := range transaction.Items {
			product, err := s.productRepo.FindForUpdate(tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
			}

			// Boleh minus secara transien: kasir yang balapan dengan
			// penyesuaian stok tidak boleh memblokir penjualan.
			newStock := product.Stock - item.Quantity

			if err := s.productRepo.UpdateStock(tx, product.ID, newStock, cashierName); err != nil {
				return err
			}

			entry := model.StockLog{
				Date:           date,
				Type:           model.StockLogSale,
				ProductID:      product.ID,
				ProductName:    product.Name,
				QuantityChange: -item.Quantity,
				OldStock:       product.Stock,
				NewStock:       newStock,
				Notes:          fmt.Sprintf("Transaksi #%s", transaction.ShortID()),
			}
			if err := s.logRepo.Create(tx, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		// nothing was applied locally; the read model still shows the
		// pre-call state
		return nil, err
	}

	s.cache.ApplySale(transaction, entries)

	if s.hub != nil {
		s.hub.Publish("transaction_recorded", map[string]interface{}{
			"transaction_id": transaction.ID,
			"total":          transaction.Total,
			"payment_method": transaction.PaymentMethod,
			"cashier":        cashierName,
		})
	}

	return &transaction, nil
}

// ReverseSale deletes a transaction and restocks its items via compensating
// Adjustment entries. Restock amounts are applied against the CURRENT stock,
// not the stock at sale time: if stock was independently adjusted in
// between, the reversal is an approximation, by contract.
func (s *salesService) ReverseSale(id uuid.UUID, actor string) error {
	transaction, ok := s.cache.FindTransaction(id)
	if !ok {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range transaction.Items {
			product, err := s.productRepo.FindForUpdate(tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
			}

			newStock := product.Stock + item.Quantity
			if err := s.productRepo.UpdateStock(tx, product.ID, newStock, actor); err != nil {
				return err
			}

			entry := model.StockLog{
				Date:           now,
				Type:           model.StockLogAdjustment,
				ProductID:      product.ID,
				ProductName:    item.Name,
				QuantityChange: item.Quantity,
				OldStock:       product.Stock,
				NewStock:       newStock,
				Notes:          fmt.Sprintf("Pembatalan Transaksi #%s", transaction.ShortID()),
			}
			if err := s.logRepo.Create(tx, &entry); err != nil {
				return err
			}
		}
		return s.transactionRepo.Delete(tx, transaction.ID)
	})
	if err != nil {
		return err
	}

	s.cache.RemoveTransaction(transaction.ID)
	// The optimistic-update path is error-prone for reversals; a full
	// stock-state resync from the store is the sanctioned strategy here.
	// The delete is already committed at this point, so a failed resync only
	// leaves the mirror stale until the next one; it is not a failed reversal.
	if err := s.cache.RefreshStockState(); err != nil {
		log.Println("Failed to refresh stock state after reversal:", err)
	}

	if s.hub != nil {
		s.hub.Publish("transaction_reversed", map[string]interface{}{
			"transaction_id": transaction.ID,
			"items":          len(transaction.Items),
			"by":             actor,
		})
	}

	return nil
}

func (s *salesService) Transactions() []model.Transaction {
	return s.cache.Transactions()
}

func (s *salesService) FindTransaction(id uuid.UUID) (*model.Transaction, error) {
	transaction, ok := s.cache.FindTransaction(id)
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return &transaction, nil
}

package service

import (
	"fmt"
	"time"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/repository"
	"kopdes-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService owns the stock invariant: every stock mutation writes the
// product's new stock and an append-only log entry in one atomic batch, and
// every log row satisfies newStock == oldStock + quantityChange.
//
// The engine itself does not reject a change that drives stock negative;
// callers (POS quantity capping, stock forms) are responsible for
// pre-checks. This keeps minor stock-count drift from blocking sales.
type LedgerService interface {
	ApplyStockChange(productID uuid.UUID, quantityChange int, logType model.StockLogType, notes string, at time.Time, actor string) (*model.StockLog, error)
	ReceiveStock(productID uuid.UUID, quantity int, notes string, actor string) (*model.StockLog, error)
	AdjustStock(productID uuid.UUID, newStock int, notes string, actor string) (*model.StockLog, error)
}

type ledgerService struct {
	productRepo repository.ProductRepository
	logRepo     repository.StockLogRepository
	cache       *readmodel.Cache
	db          *gorm.DB
	hub         *ws.Hub
}

func NewLedgerService(
	productRepo repository.ProductRepository,
	logRepo repository.StockLogRepository,
	cache *readmodel.Cache,
	db *gorm.DB,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		productRepo: productRepo,
		logRepo:     logRepo,
		cache:       cache,
		db:          db,
		hub:         hub,
	}
}

func (s *ledgerService) ApplyStockChange(productID uuid.UUID, quantityChange int, logType model.StockLogType, notes string, at time.Time, actor string) (*model.StockLog, error) {
	return s.apply(productID, logType, notes, at, actor, func(current int) int {
		return quantityChange
	})
}

func (s *ledgerService) ReceiveStock(productID uuid.UUID, quantity int, notes string, actor string) (*model.StockLog, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("receive quantity must be positive: %w", ErrValidation)
	}
	return s.apply(productID, model.StockLogReceipt, notes, time.Now(), actor, func(current int) int {
		return quantity
	})
}

func (s *ledgerService) AdjustStock(productID uuid.UUID, newStock int, notes string, actor string) (*model.StockLog, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("adjusted stock cannot be negative: %w", ErrValidation)
	}
	return s.apply(productID, model.StockLogAdjustment, notes, time.Now(), actor, func(current int) int {
		return newStock - current
	})
}

// apply is the single write path for stock mutations outside a sale.
// compute receives the stock of the row-locked product and returns the
// signed quantity change; old/new snapshots come from the locked row, not
// the cache, so concurrent terminals serialize per product.
func (s *ledgerService) apply(productID uuid.UUID, logType model.StockLogType, notes string, at time.Time, actor string, compute func(current int) int) (*model.StockLog, error) {
	if _, ok := s.cache.FindProduct(productID); !ok {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	var entry model.StockLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindForUpdate(tx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}

		change := compute(product.Stock)
		newStock := product.Stock + change

		if err := s.productRepo.UpdateStock(tx, product.ID, newStock, actor); err != nil {
			return err
		}

		entry = model.StockLog{
			Date:           at,
			Type:           logType,
			ProductID:      product.ID,
			ProductName:    product.Name, // snapshot
			QuantityChange: change,
			OldStock:       product.Stock,
			NewStock:       newStock,
			Notes:          notes,
		}
		return s.logRepo.Create(tx, &entry)
	})
	if err != nil {
		// cache deliberately untouched: the read model never reflects a
		// failed batch
		return nil, err
	}

	s.cache.ApplyStockChange(entry)

	if s.hub != nil {
		s.hub.Publish("stock_changed", map[string]interface{}{
			"product_id":      entry.ProductID,
			"product_name":    entry.ProductName,
			"type":            entry.Type,
			"quantity_change": entry.QuantityChange,
			"new_stock":       entry.NewStock,
			"by":              actor,
		})
	}

	return &entry, nil
}

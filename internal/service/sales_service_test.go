package service

import (
	"errors"
	"testing"
	"time"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaleDecrementsStockAndLogs(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Minyak Goreng 1L", "MNY-001", 15000, 17500, 10)

	transaction, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 3}},
		PaymentMethod: model.PaymentCash,
		AmountPaid:    100000,
	}, "Kasir")
	require.NoError(t, err)

	assert.Equal(t, int64(3*17500), transaction.Total)
	assert.Equal(t, "Kasir", transaction.CashierName)
	require.Len(t, transaction.Items, 1)
	assert.Equal(t, "Minyak Goreng 1L", transaction.Items[0].Name)
	assert.Equal(t, int64(17500), transaction.Items[0].SellPrice)

	assert.Equal(t, 7, env.storedStock(t, product))

	logs := env.allLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, model.StockLogSale, logs[0].Type)
	assert.Equal(t, -3, logs[0].QuantityChange)
	assert.Equal(t, 10, logs[0].OldStock)
	assert.Equal(t, 7, logs[0].NewStock)

	// read model gained the transaction and the log
	assert.Len(t, env.cache.Transactions(), 1)
	assert.Len(t, env.cache.StockLogs(), 1)
}

func TestRecordSaleCashChange(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Gula Pasir 1kg", "GLA-001", 13000, 15000, 10)

	transaction, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: model.PaymentCash,
		AmountPaid:    20000,
	}, "Kasir")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), transaction.Total)
	assert.Equal(t, int64(5000), transaction.Change)
}

func TestRecordSaleInsufficientCashRejectedBeforeAnyWrite(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Gula Pasir 1kg", "GLA-001", 13000, 15000, 10)

	_, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: model.PaymentCash,
		AmountPaid:    10000,
	}, "Kasir")
	require.ErrorIs(t, err, ErrValidation)

	// no partial effect anywhere
	assert.Equal(t, 10, env.storedStock(t, product))
	assert.Empty(t, env.allLogs(t))
	assert.Empty(t, env.cache.Transactions())
}

func TestRecordSaleEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sales.RecordSale(SaleRequest{
		PaymentMethod: model.PaymentCash,
		AmountPaid:    10000,
	}, "Kasir")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: model.PaymentQRIS,
	}, "Kasir")
	require.ErrorIs(t, err, ErrNotFound)
}

// A write failure on any line aborts the whole batch: the transaction
// document and the earlier lines' writes roll back with it, and the read
// model stays at the pre-call state.
func TestRecordSaleMidBatchFailureRollsBackAllWrites(t *testing.T) {
	env := newTestEnv(t)
	rice := env.createProduct(t, "Beras Premium 5kg", "BRS-001", 60000, 68000, 10)
	ghost := env.createProduct(t, "Telur Ayam", "TLR-001", 2000, 2500, 30)

	// row is gone from the store but the mirror has not caught up yet, so
	// the failure surfaces inside the batch, after the first line committed
	require.NoError(t, env.db.Delete(&model.Product{}, "id = ?", ghost.ID).Error)

	_, err := env.sales.RecordSale(SaleRequest{
		Items: []SaleItemRequest{
			{ProductID: rice.ID, Quantity: 3},
			{ProductID: ghost.ID, Quantity: 2},
		},
		PaymentMethod: model.PaymentCash,
		AmountPaid:    500000,
	}, "Kasir")
	require.ErrorIs(t, err, ErrNotFound)

	// nothing persisted, including the first line
	assert.Equal(t, 10, env.storedStock(t, rice))
	assert.Empty(t, env.allLogs(t))
	transactions, err := env.transactionRepo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, transactions)

	// read model untouched
	cached, ok := env.cache.FindProduct(rice.ID)
	require.True(t, ok)
	assert.Equal(t, 10, cached.Stock)
	assert.Empty(t, env.cache.Transactions())
	assert.Empty(t, env.cache.StockLogs())
}

func TestRecordSaleWalkInAndNonCashDefaults(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Telur Ayam", "TLR-001", 2000, 2500, 100)

	transaction, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 10}},
		PaymentMethod: model.PaymentQRIS,
		CustomerName:  "   ",
		AmountPaid:    999999, // ignored: non-cash is always exact
	}, "Kasir")
	require.NoError(t, err)

	assert.Equal(t, model.WalkInCustomerName, transaction.CustomerName)
	assert.Equal(t, transaction.Total, transaction.AmountPaid)
	assert.Zero(t, transaction.Change)
}

func TestRecordSaleBackdated(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Kopi Bubuk 200g", "KPI-001", 18000, 22000, 10)

	backdate := time.Date(2026, 8, 1, 9, 30, 0, 0, time.Local)
	transaction, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: model.PaymentBankTransfer,
		Date:          backdate,
	}, "Admin")
	require.NoError(t, err)

	assert.True(t, transaction.Date.Equal(backdate))
	logs := env.allLogs(t)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Date.Equal(backdate), "sale logs carry the transaction date")
}

// Selling exactly the available quantity drives stock to zero, never below.
// Selling MORE than available is not stopped by the engine: the POS UI caps
// line quantities at available stock, and that capping is the only guard.
func TestRecordSaleStockBoundaries(t *testing.T) {
	env := newTestEnv(t)

	exact := env.createProduct(t, "Beras Premium 5kg", "BRS-001", 60000, 68000, 4)
	_, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: exact.ID, Quantity: 4}},
		PaymentMethod: model.PaymentQRIS,
	}, "Kasir")
	require.NoError(t, err)
	assert.Equal(t, 0, env.storedStock(t, exact))

	over := env.createProduct(t, "Minyak Goreng 1L", "MNY-001", 15000, 17500, 2)
	_, err = env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: over.ID, Quantity: 5}},
		PaymentMethod: model.PaymentQRIS,
	}, "Kasir")
	require.NoError(t, err, "engine does not enforce the cap")
	assert.Equal(t, -3, env.storedStock(t, over))
}

func TestReverseSaleRestocksAndDeletes(t *testing.T) {
	env := newTestEnv(t)
	first := env.createProduct(t, "Gula Pasir 1kg", "GLA-001", 13000, 15000, 10)
	second := env.createProduct(t, "Telur Ayam", "TLR-001", 2000, 2500, 30)

	transaction, err := env.sales.RecordSale(SaleRequest{
		Items: []SaleItemRequest{
			{ProductID: first.ID, Quantity: 1},
			{ProductID: second.ID, Quantity: 2},
		},
		PaymentMethod: model.PaymentCash,
		AmountPaid:    50000,
	}, "Kasir")
	require.NoError(t, err)
	assert.Equal(t, 9, env.storedStock(t, first))
	assert.Equal(t, 28, env.storedStock(t, second))

	require.NoError(t, env.sales.ReverseSale(transaction.ID, "Admin"))

	// stock restored per item
	assert.Equal(t, 10, env.storedStock(t, first))
	assert.Equal(t, 30, env.storedStock(t, second))

	// transaction gone from store and read model
	assert.Empty(t, env.cache.Transactions())
	_, err = env.transactionRepo.FindByID(transaction.ID)
	require.Error(t, err)

	// two compensating entries with positive change, history intact
	var reversals []model.StockLog
	for _, entry := range env.allLogs(t) {
		if entry.Type == model.StockLogAdjustment {
			reversals = append(reversals, entry)
		}
	}
	require.Len(t, reversals, 2)
	for _, entry := range reversals {
		assert.Positive(t, entry.QuantityChange)
		assert.Equal(t, entry.NewStock, entry.OldStock+entry.QuantityChange)
	}
	// the sale entries are still there
	assert.Len(t, env.allLogs(t), 4)
}

type readFailingLogRepo struct {
	repository.StockLogRepository
	failReads bool
}

func (r *readFailingLogRepo) FindAll() ([]model.StockLog, error) {
	if r.failReads {
		return nil, errors.New("store unavailable")
	}
	return r.StockLogRepository.FindAll()
}

// A resync failure after the delete committed is not a failed reversal: the
// caller must not be told to retry, the mirror is just stale until the next
// resync.
func TestReverseSaleSucceedsWhenResyncFails(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Kopi Bubuk 200g", "KPI-001", 18000, 22000, 10)

	logRepo := &readFailingLogRepo{StockLogRepository: env.stockLogRepo}
	cache := readmodel.New(env.productRepo, env.memberRepo, env.transactionRepo, logRepo)
	require.NoError(t, cache.Load())
	sales := NewSalesService(env.productRepo, env.transactionRepo, logRepo, cache, env.db, nil)

	transaction, err := sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: model.PaymentCash,
		AmountPaid:    44000,
	}, "Admin")
	require.NoError(t, err)

	logRepo.failReads = true
	require.NoError(t, sales.ReverseSale(transaction.ID, "Admin"))

	// the compensating writes and the delete are committed
	assert.Equal(t, 10, env.storedStock(t, product))
	_, err = env.transactionRepo.FindByID(transaction.ID)
	require.Error(t, err)
	_, ok := cache.FindTransaction(transaction.ID)
	assert.False(t, ok)
}

func TestReverseSaleUnknownTransaction(t *testing.T) {
	env := newTestEnv(t)
	require.ErrorIs(t, env.sales.ReverseSale(uuid.New(), "Admin"), ErrNotFound)
}

// Reversal restocks against CURRENT stock. An adjustment between sale and
// reversal is not undone; the reversal is an accepted approximation.
func TestReverseSaleAfterIndependentAdjustment(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Kopi Bubuk 200g", "KPI-001", 18000, 22000, 10)

	transaction, err := env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 4}},
		PaymentMethod: model.PaymentQRIS,
	}, "Kasir")
	require.NoError(t, err)
	assert.Equal(t, 6, env.storedStock(t, product))

	_, err = env.ledger.AdjustStock(product.ID, 20, "stock take", "Admin")
	require.NoError(t, err)

	require.NoError(t, env.sales.ReverseSale(transaction.ID, "Admin"))
	assert.Equal(t, 24, env.storedStock(t, product))
}

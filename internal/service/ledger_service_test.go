package service

import (
	"testing"
	"time"

	"kopdes-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiveStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Beras Premium 5kg", "BRS-001", 60000, 68000, 5)

	entry, err := env.ledger.ReceiveStock(product.ID, 20, "PO-1", "Admin")
	require.NoError(t, err)

	assert.Equal(t, model.StockLogReceipt, entry.Type)
	assert.Equal(t, 20, entry.QuantityChange)
	assert.Equal(t, 5, entry.OldStock)
	assert.Equal(t, 25, entry.NewStock)
	assert.Equal(t, "PO-1", entry.Notes)
	assert.Equal(t, product.Name, entry.ProductName)

	// store and read model agree
	assert.Equal(t, 25, env.storedStock(t, product))
	cached, ok := env.cache.FindProduct(product.ID)
	require.True(t, ok)
	assert.Equal(t, 25, cached.Stock)

	logs := env.allLogs(t)
	require.Len(t, logs, 1)
}

func TestReceiveStockRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Gula Pasir 1kg", "GLA-001", 13000, 15000, 10)

	for _, qty := range []int{0, -3} {
		_, err := env.ledger.ReceiveStock(product.ID, qty, "", "Admin")
		require.ErrorIs(t, err, ErrValidation)
	}

	// rejected before any write
	assert.Equal(t, 10, env.storedStock(t, product))
	assert.Empty(t, env.allLogs(t))
}

func TestAdjustStockRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Minyak Goreng 1L", "MNY-001", 15000, 17500, 12)

	entry, err := env.ledger.AdjustStock(product.ID, 7, "stock take", "Admin")
	require.NoError(t, err)

	assert.Equal(t, model.StockLogAdjustment, entry.Type)
	assert.Equal(t, 7-12, entry.QuantityChange)
	assert.Equal(t, 12, entry.OldStock)
	assert.Equal(t, 7, entry.NewStock)

	// reading back immediately yields exactly the adjusted value
	cached, ok := env.cache.FindProduct(product.ID)
	require.True(t, ok)
	assert.Equal(t, 7, cached.Stock)
	assert.Equal(t, 7, env.storedStock(t, product))

	require.Len(t, env.allLogs(t), 1)
}

func TestAdjustStockRejectsNegativeTarget(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Telur Ayam", "TLR-001", 2000, 2500, 3)

	_, err := env.ledger.AdjustStock(product.ID, -1, "", "Admin")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 3, env.storedStock(t, product))
}

func TestApplyStockChangeUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ledger.ApplyStockChange(uuid.New(), 5, model.StockLogReceipt, "", time.Now(), "Admin")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, env.allLogs(t))
}

func TestApplyStockChangeAllowsNegativeResult(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Kopi Bubuk 200g", "KPI-001", 18000, 22000, 2)

	// the engine is deliberately permissive; pre-checks are the caller's job
	entry, err := env.ledger.ApplyStockChange(product.ID, -5, model.StockLogAdjustment, "drift", time.Now(), "Admin")
	require.NoError(t, err)
	assert.Equal(t, -3, entry.NewStock)
	assert.Equal(t, -3, env.storedStock(t, product))
}

// The core invariant: after any sequence of operations, stock equals opening
// stock plus the fold of all log entries, and every entry is self-consistent.
func TestLedgerInvariantAfterOperationSequence(t *testing.T) {
	env := newTestEnv(t)
	const openingStock = 10
	product := env.createProduct(t, "Beras Premium 5kg", "BRS-001", 60000, 68000, openingStock)

	_, err := env.ledger.ReceiveStock(product.ID, 15, "PO-7", "Admin")
	require.NoError(t, err)
	_, err = env.ledger.AdjustStock(product.ID, 20, "stock take", "Admin")
	require.NoError(t, err)
	_, err = env.sales.RecordSale(SaleRequest{
		Items:         []SaleItemRequest{{ProductID: product.ID, Quantity: 4}},
		PaymentMethod: model.PaymentQRIS,
	}, "Kasir")
	require.NoError(t, err)
	_, err = env.ledger.ReceiveStock(product.ID, 2, "PO-8", "Admin")
	require.NoError(t, err)

	sum := 0
	for _, entry := range env.allLogs(t) {
		assert.Equal(t, entry.NewStock, entry.OldStock+entry.QuantityChange)
		if entry.ProductID == product.ID {
			sum += entry.QuantityChange
		}
	}

	assert.Equal(t, openingStock+sum, env.storedStock(t, product))
	cached, ok := env.cache.FindProduct(product.ID)
	require.True(t, ok)
	assert.Equal(t, openingStock+sum, cached.Stock)
}

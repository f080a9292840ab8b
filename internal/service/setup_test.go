package service

import (
	"testing"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db    *gorm.DB
	cache *readmodel.Cache

	ledger  LedgerService
	sales   SalesService
	catalog CatalogService

	productRepo     repository.ProductRepository
	memberRepo      repository.MemberRepository
	transactionRepo repository.TransactionRepository
	stockLogRepo    repository.StockLogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Member{}, &model.Transaction{}, &model.StockLog{}))

	productRepo := repository.NewProductRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)

	cache := readmodel.New(productRepo, memberRepo, transactionRepo, stockLogRepo)
	require.NoError(t, cache.Load())

	return &testEnv{
		db:              db,
		cache:           cache,
		ledger:          NewLedgerService(productRepo, stockLogRepo, cache, db, nil),
		sales:           NewSalesService(productRepo, transactionRepo, stockLogRepo, cache, db, nil),
		catalog:         NewCatalogService(productRepo, memberRepo, cache, nil),
		productRepo:     productRepo,
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		stockLogRepo:    stockLogRepo,
	}
}

// createProduct seeds a product with the given opening stock and reloads the
// read model, mimicking the startup bulk load.
func (e *testEnv) createProduct(t *testing.T, name, sku string, purchasePrice, sellPrice int64, stock int) model.Product {
	t.Helper()
	p := model.Product{
		SKU:           sku,
		Name:          name,
		PurchasePrice: purchasePrice,
		SellPrice:     sellPrice,
		Stock:         stock,
		Unit:          "pcs",
	}
	require.NoError(t, e.db.Create(&p).Error)
	require.NoError(t, e.cache.Load())
	return p
}

func (e *testEnv) storedStock(t *testing.T, p model.Product) int {
	t.Helper()
	stored, err := e.productRepo.FindByID(p.ID)
	require.NoError(t, err)
	return stored.Stock
}

func (e *testEnv) allLogs(t *testing.T) []model.StockLog {
	t.Helper()
	logs, err := e.stockLogRepo.FindAll()
	require.NoError(t, err)
	return logs
}

// Package readmodel holds the in-memory working set the UI reads from:
// products, members, transactions and stock logs, mirrored from the store.
// Mutating services apply their changes here only after the corresponding
// store write has committed; a failed write leaves the mirror untouched.
package readmodel

import (
	"sort"
	"sync"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/repository"

	"github.com/google/uuid"
)

type Cache struct {
	mu sync.RWMutex

	products     []model.Product     // name ASC
	members      []model.Member      // name ASC
	transactions []model.Transaction // date DESC
	stockLogs    []model.StockLog    // date DESC

	productRepo     repository.ProductRepository
	memberRepo      repository.MemberRepository
	transactionRepo repository.TransactionRepository
	stockLogRepo    repository.StockLogRepository
}

func New(
	productRepo repository.ProductRepository,
	memberRepo repository.MemberRepository,
	transactionRepo repository.TransactionRepository,
	stockLogRepo repository.StockLogRepository,
) *Cache {
	return &Cache{
		productRepo:     productRepo,
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		stockLogRepo:    stockLogRepo,
	}
}

// Load bulk-reads all four collections. Called once at startup, before the
// server starts accepting requests.
func (c *Cache) Load() error {
	products, err := c.productRepo.FindAll()
	if err != nil {
		return err
	}
	members, err := c.memberRepo.FindAll()
	if err != nil {
		return err
	}
	transactions, err := c.transactionRepo.FindAll()
	if err != nil {
		return err
	}
	logs, err := c.stockLogRepo.FindAll()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.members = members
	c.transactions = transactions
	c.stockLogs = logs
	return nil
}

// --- snapshot accessors (copies, safe to hand to reports/handlers) ---

func (c *Cache) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) Members() []model.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Member, len(c.members))
	copy(out, c.members)
	return out
}

func (c *Cache) Transactions() []model.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

func (c *Cache) StockLogs() []model.StockLog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.StockLog, len(c.stockLogs))
	copy(out, c.stockLogs)
	return out
}

func (c *Cache) FindProduct(id uuid.UUID) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (c *Cache) FindMember(id string) (model.Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Member{}, false
}

func (c *Cache) FindTransaction(id uuid.UUID) (model.Transaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// --- state transitions, applied only after a confirmed commit ---

func (c *Cache) ApplyProductCreated(p model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, p)
	sortProducts(c.products)
}

func (c *Cache) ApplyProductUpdated(p model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			break
		}
	}
	sortProducts(c.products)
}

func (c *Cache) ApplyProductDeleted(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
}

func (c *Cache) ApplyMemberAdded(m model.Member) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members = append(c.members, m)
	sortMembers(c.members)
}

func (c *Cache) ApplyMemberDeleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.members {
		if c.members[i].ID == id {
			c.members = append(c.members[:i], c.members[i+1:]...)
			break
		}
	}
}

// ApplyStockChange records a committed ledger entry: the product stock is set
// to the entry's absolute NewStock (so a stale mirror converges rather than
// drifts) and the entry is merged into the log view.
func (c *Cache) ApplyStockChange(entry model.StockLog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyStockChangeLocked(entry)
}

func (c *Cache) applyStockChangeLocked(entry model.StockLog) {
	for i := range c.products {
		if c.products[i].ID == entry.ProductID {
			c.products[i].Stock = entry.NewStock
			break
		}
	}
	c.stockLogs = append([]model.StockLog{entry}, c.stockLogs...)
	sortLogs(c.stockLogs)
}

// ApplySale merges a committed sale: the transaction document plus its
// per-item ledger entries, in one locked pass.
func (c *Cache) ApplySale(t model.Transaction, entries []model.StockLog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transactions = append(c.transactions, t)
	sortTransactions(c.transactions)
	for _, entry := range entries {
		c.applyStockChangeLocked(entry)
	}
}

func (c *Cache) RemoveTransaction(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.transactions {
		if c.transactions[i].ID == id {
			c.transactions = append(c.transactions[:i], c.transactions[i+1:]...)
			break
		}
	}
}

// RefreshStockState re-reads products and stock logs from the store. Used
// after a sale reversal, where a full resync is simpler and safer than
// replaying the compensating writes locally.
func (c *Cache) RefreshStockState() error {
	products, err := c.productRepo.FindAll()
	if err != nil {
		return err
	}
	logs, err := c.stockLogRepo.FindAll()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.stockLogs = logs
	return nil
}

func sortProducts(products []model.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
}

func sortMembers(members []model.Member) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})
}

func sortTransactions(transactions []model.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}

func sortLogs(logs []model.StockLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
}

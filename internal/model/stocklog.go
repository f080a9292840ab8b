package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockLogType string

const (
	StockLogReceipt    StockLogType = "Penerimaan"
	StockLogAdjustment StockLogType = "Penyesuaian"
	StockLogSale       StockLogType = "Penjualan"
)

// StockLog is an append-only audit entry for every stock mutation.
// Rows are immutable once written; a cancelled sale produces a new
// compensating entry instead of touching history.
type StockLog struct {
	ID   uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time    `gorm:"index;not null" json:"date"`
	Type StockLogType `gorm:"type:varchar(20);not null" json:"type"`

	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	// ProductName is a snapshot at write time, deliberately denormalized so
	// the log still reads correctly after a rename or delete.
	ProductName string `gorm:"type:varchar(255)" json:"product_name"`

	QuantityChange int    `gorm:"not null" json:"quantity_change"` // positive = stok bertambah
	OldStock       int    `gorm:"not null" json:"old_stock"`
	NewStock       int    `gorm:"not null" json:"new_stock"`
	Notes          string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *StockLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

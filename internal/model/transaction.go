package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Tunai"
	PaymentQRIS         PaymentMethod = "QRIS"
	PaymentBankTransfer PaymentMethod = "Transfer Bank"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentBankTransfer:
		return true
	}
	return false
}

// TransactionItem is a line-item snapshot taken at sale time. Name and
// SellPrice are frozen here so later catalog edits never rewrite a receipt.
type TransactionItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SellPrice int64     `json:"sell_price"`
	Quantity  int       `json:"quantity"`
}

type Transaction struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date time.Time `gorm:"index;not null" json:"date"` // caller-supplied, boleh backdate

	Items         []TransactionItem `gorm:"serializer:json" json:"items"`
	Total         int64             `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod     `gorm:"type:varchar(20);not null" json:"payment_method"`
	CustomerName  string            `gorm:"type:varchar(255)" json:"customer_name"`
	AmountPaid    int64             `json:"amount_paid"`
	Change        int64             `json:"change"`
	CashierName   string            `gorm:"type:varchar(100)" json:"cashier_name"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// ShortID is the human-facing transaction number used on receipts and notes.
func (t *Transaction) ShortID() string {
	s := t.ID.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

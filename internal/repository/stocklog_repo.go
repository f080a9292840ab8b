package repository

import (
	"kopdes-pos/internal/model"

	"gorm.io/gorm"
)

type StockLogRepository interface {
	Create(tx *gorm.DB, entry *model.StockLog) error
	FindAll() ([]model.StockLog, error)
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

// Create menerima tx: log selalu ditulis dalam batch yang sama dengan
// update stok yang dicatatnya. Tidak ada Update/Delete — log append-only.
func (r *stockLogRepo) Create(tx *gorm.DB, entry *model.StockLog) error {
	return tx.Create(entry).Error
}

func (r *stockLogRepo) FindAll() ([]model.StockLog, error) {
	var logs []model.StockLog
	err := r.db.Order("date DESC, created_at DESC").Find(&logs).Error
	return logs, err
}

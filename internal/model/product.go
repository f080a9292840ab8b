package model

type Product struct {
	BaseModel
	// SKU is intended unique; guarded by a service-level pre-check,
	// not a DB constraint.
	SKU           string `gorm:"type:varchar(50);index;not null" json:"sku" validate:"required"`
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	PurchasePrice int64  `gorm:"default:0" json:"purchase_price" validate:"gte=0"` // harga beli (HPP basis)
	SellPrice     int64  `gorm:"not null" json:"sell_price" validate:"required,gt=0"`
	Stock         int    `gorm:"default:0" json:"stock"`
	Unit          string `gorm:"type:varchar(20)" json:"unit"`
}

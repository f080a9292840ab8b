package model

import "time"

// WalkInCustomerName is the display name stored when a sale has no member
// attached. Members are linked to transactions by this display-name match
// only; there is no foreign key.
const WalkInCustomerName = "Pelanggan Umum"

// Member of the cooperative. ID is the caller-chosen member number
// (no anggota), which doubles as the primary key.
type Member struct {
	ID        string    `gorm:"type:varchar(50);primary_key" json:"id" validate:"required"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

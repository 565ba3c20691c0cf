package models

import "time"

// LowStockThreshold marks products that should be restocked soon.
const LowStockThreshold = 10

type Product struct {
	ID        int32  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name      string `gorm:"type:varchar(128);not null" json:"name"`
	Category  string `gorm:"type:varchar(64);not null" json:"category"`
	CostPrice string `gorm:"type:decimal(18,2);not null" json:"cost_price"`
	SellPrice string `gorm:"type:decimal(18,2);not null" json:"sell_price"`
	Stock     int64  `gorm:"not null;default:0" json:"stock"`
	Unit      string `gorm:"type:varchar(32);not null" json:"unit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_restaurant_table_number" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	TableNumber  string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_restaurant_table_number" json:"table_number"`
	QRCodeID     string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"qr_code_id"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

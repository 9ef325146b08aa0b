package models

import (
	"time"

	"github.com/rennixx/ServiceQR/theme"
)

// Restaurant adalah tenant. Slug dipakai di URL publik, theme tersimpan
// sebagai kolom JSON berisi override parsial.
type Restaurant struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	LogoURL     *string      `gorm:"type:varchar(512)" json:"logo_url"`
	ThemeConfig theme.Config `gorm:"type:json" json:"theme_config"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

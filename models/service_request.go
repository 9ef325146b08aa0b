package models

import "time"

// Request types yang bisa diminta guest dari meja
const (
	RequestTypeWaiter = "waiter"
	RequestTypeWater  = "water"
	RequestTypeBill   = "bill"
)

// Request lifecycle: pending -> done, sekali saja
const (
	RequestStatusPending = "pending"
	RequestStatusDone    = "done"
)

type ServiceRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TableID   uint      `gorm:"not null;index" json:"table_id"`
	Table     Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidRequestType -> cek type terhadap set yang didukung
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeWaiter, RequestTypeWater, RequestTypeBill:
		return true
	}
	return false
}

// RequestDetails adalah row service request yang sudah diperkaya dengan
// info meja dan restoran, dipakai dashboard staff.
type RequestDetails struct {
	ID             uint      `json:"id"`
	TableID        uint      `json:"table_id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	TableNumber    string    `json:"table_number"`
	RestaurantID   uint      `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	RestaurantSlug string    `json:"restaurant_slug"`
}

package models

import "time"

type Feedback struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	TableID          uint            `gorm:"not null;index" json:"table_id"`
	Table            Table           `gorm:"foreignKey:TableID" json:"table,omitempty"`
	ServiceRequestID *uint           `json:"service_request_id"`
	ServiceRequest   *ServiceRequest `gorm:"foreignKey:ServiceRequestID" json:"service_request,omitempty"`
	Rating           int             `gorm:"not null" json:"rating"` // 1-5
	Comment          *string         `gorm:"type:text" json:"comment"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
}

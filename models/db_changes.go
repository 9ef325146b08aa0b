package models

import "time"

// DBChange adalah change-capture row yang diisi trigger database setiap ada
// insert/update pada tabel yang dipantau. Change monitor membaca row yang
// belum diproses lalu menyiarkannya ke hub realtime.
type DBChange struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action" json:"table_name"`
	RecordID   int64     `gorm:"not null" json:"record_id"`
	ActionType string    `gorm:"type:varchar(20);not null;index:idx_table_action" json:"action_type"` // INSERT | UPDATE | DELETE
	ChangedAt  time.Time `gorm:"not null;autoCreateTime" json:"changed_at"`
	Processed  bool      `gorm:"default:false;index:idx_processed" json:"processed"`
}

package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/realtime"
)

// ChangeMonitor membaca change-capture rows yang diisi trigger database dan
// menyiarkannya sebagai event realtime ke dashboard. Rows diproses urut
// changed_at sehingga event per record sampai sesuai urutan commit.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "service_requests":
			cm.processRequestChange(change)
		case "tables":
			cm.processTableChange(change)
		case "restaurants":
			cm.processRestaurantChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}

	if len(changes) > 0 {
		log.Printf("Processed %d changes", len(changes))
	}
}

func (cm *ChangeMonitor) processRequestChange(change models.DBChange) {
	details, err := RequestDetailsByID(cm.DB, uint(change.RecordID))
	if err != nil {
		log.Printf("Error fetching service request %d: %v", change.RecordID, err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		realtime.BroadcastRequestCreate(*details)
	case "UPDATE":
		realtime.BroadcastRequestUpdate(*details)
	}
}

func (cm *ChangeMonitor) processTableChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		realtime.BroadcastTableDelete(uint(change.RecordID))
		return
	}

	var table models.Table
	if err := cm.DB.First(&table, change.RecordID).Error; err != nil {
		log.Printf("Error fetching table %d: %v", change.RecordID, err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		realtime.BroadcastTableCreate(table)
	case "UPDATE":
		realtime.BroadcastTableUpdate(table)
	}
}

func (cm *ChangeMonitor) processRestaurantChange(change models.DBChange) {
	if change.ActionType != "UPDATE" {
		return
	}

	var restaurant models.Restaurant
	if err := cm.DB.First(&restaurant, change.RecordID).Error; err != nil {
		log.Printf("Error fetching restaurant %d: %v", change.RecordID, err)
		return
	}
	realtime.BroadcastThemeUpdate(restaurant)
}

// RequestDetailsByID mengambil satu service request beserta info meja dan
// restorannya, bentuk yang sama dengan list dashboard.
func RequestDetailsByID(db *gorm.DB, requestID uint) (*models.RequestDetails, error) {
	var row models.RequestDetails
	err := db.Table("service_requests").
		Select(`service_requests.id, service_requests.table_id, service_requests.type,
			service_requests.status, service_requests.created_at, service_requests.updated_at,
			tables.table_number, tables.restaurant_id,
			restaurants.name AS restaurant_name, restaurants.slug AS restaurant_slug`).
		Joins("JOIN tables ON tables.id = service_requests.table_id").
		Joins("JOIN restaurants ON restaurants.id = tables.restaurant_id").
		Where("service_requests.id = ?", requestID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

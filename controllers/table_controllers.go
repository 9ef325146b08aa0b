package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/realtime"
	"github.com/rennixx/ServiceQR/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> admin menambahkan meja baru. QR token di-generate di sini
// kalau tidak dikirim; token inilah yang tertanam di QR code fisik.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		TableNumber  string `json:"table_number" binding:"required"`
		QRCodeID     string `json:"qr_code_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := tc.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	table := models.Table{
		RestaurantID: req.RestaurantID,
		TableNumber:  req.TableNumber,
		QRCodeID:     req.QRCodeID,
	}
	if table.QRCodeID == "" {
		table.QRCodeID = uuid.NewString()
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %s (restaurant=%s)", table.TableNumber, restaurant.Slug)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetTablesByRestaurant -> seluruh meja satu restoran, urut table_number
func (tc *TableController) GetTablesByRestaurant(c *gin.Context) {
	slug := c.Param("slug")

	var restaurant models.Restaurant
	if err := tc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurant.ID).
		Order("table_number ASC").
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTable -> ubah nomor meja dan/atau regenerate QR token
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		TableNumber  string `json:"table_number"`
		RegenerateQR bool   `json:"regenerate_qr"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	if body.TableNumber != "" {
		table.TableNumber = body.TableNumber
	}
	if body.RegenerateQR {
		table.QRCodeID = uuid.NewString()
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d updated (number=%s)", table.ID, table.TableNumber)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableDelete(table.ID)

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}

// ScanTable -> resolve QR token ke pasangan {table, restaurant}. Token
// unik global, jadi tidak perlu cross-check slug restoran.
func (tc *TableController) ScanTable(c *gin.Context) {
	qrCodeID := c.Param("qr_code_id")

	var table models.Table
	if err := tc.DB.Where("qr_code_id = ?", qrCodeID).First(&table).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Table not found", gin.H{
			"table":      nil,
			"restaurant": nil,
		})
		return
	}

	var restaurant models.Restaurant
	if err := tc.DB.First(&restaurant, table.RestaurantID).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Table not found", gin.H{
			"table":      nil,
			"restaurant": nil,
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", gin.H{
		"table":      table,
		"restaurant": restaurant,
	})
}

// GetTableBySlugAndNumber -> lookup via slug restoran plus nomor meja yang
// diketik manusia. Nomor di-decode dulu (spasi/tanda baca ter-encode di URL).
// Restoran dicari lebih dulu; kalau tidak ada, lookup meja tidak dijalankan.
func (tc *TableController) GetTableBySlugAndNumber(c *gin.Context) {
	slug := c.Param("slug")
	tableNumber := c.Param("table_number")
	if decoded, err := url.QueryUnescape(tableNumber); err == nil {
		tableNumber = decoded
	}

	var restaurant models.Restaurant
	if err := tc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Table not found", gin.H{
			"table":      nil,
			"restaurant": nil,
		})
		return
	}

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ? AND table_number = ?", restaurant.ID, tableNumber).
		First(&table).Error; err != nil {
		utils.RespondJSON(c, http.StatusNotFound, "Table not found", gin.H{
			"table":      nil,
			"restaurant": nil,
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", gin.H{
		"table":      table,
		"restaurant": restaurant,
	})
}

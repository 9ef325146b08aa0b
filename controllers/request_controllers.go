package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/realtime"
	"github.com/rennixx/ServiceQR/services"
	"github.com/rennixx/ServiceQR/utils"
)

type RequestController struct {
	DB *gorm.DB
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

// CreateRequest -> guest menekan tombol service di meja. Tidak ada de-dup:
// submit dua kali menghasilkan dua record pending terpisah.
func (rc *RequestController) CreateRequest(c *gin.Context) {
	var req struct {
		TableID uint   `json:"table_id" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidRequestType(req.Type) {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidRequestType)
		return
	}

	var table models.Table
	if err := rc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	request := models.ServiceRequest{
		TableID: req.TableID,
		Type:    req.Type,
		Status:  models.RequestStatusPending,
	}

	if err := rc.DB.Create(&request).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if details, err := services.RequestDetailsByID(rc.DB, request.ID); err == nil {
		realtime.BroadcastRequestCreate(*details)
	}

	utils.InfoLogger.Printf("New %s request for table %s (request=%d)", request.Type, table.TableNumber, request.ID)
	utils.RespondJSON(c, http.StatusCreated, "Request created successfully", request)
}

// MarkRequestDone -> staff menandai request selesai. Transisi pending->done
// hanya boleh sekali; request yang sudah done ditolak.
func (rc *RequestController) MarkRequestDone(c *gin.Context) {
	requestID := c.Param("request_id")

	var request models.ServiceRequest
	if err := rc.DB.First(&request, requestID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if request.Status == models.RequestStatusDone {
		utils.RespondError(c, http.StatusConflict, ErrRequestAlreadyDone)
		return
	}

	request.Status = models.RequestStatusDone
	if err := rc.DB.Save(&request).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if details, err := services.RequestDetailsByID(rc.DB, request.ID); err == nil {
		realtime.BroadcastRequestUpdate(*details)
	}

	utils.InfoLogger.Printf("Request %d marked done", request.ID)
	utils.RespondJSON(c, http.StatusOK, "Request marked as done", request)
}

// GetPendingRequests -> list pending untuk dashboard staff, terbaru dulu,
// diperkaya dengan nomor meja dan info restoran.
func (rc *RequestController) GetPendingRequests(c *gin.Context) {
	slug := c.Param("slug")

	var restaurant models.Restaurant
	if err := rc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	var rows []models.RequestDetails
	if err := rc.DB.Table("service_requests").
		Select(`service_requests.id, service_requests.table_id, service_requests.type,
			service_requests.status, service_requests.created_at, service_requests.updated_at,
			tables.table_number, tables.restaurant_id,
			restaurants.name AS restaurant_name, restaurants.slug AS restaurant_slug`).
		Joins("JOIN tables ON tables.id = service_requests.table_id").
		Joins("JOIN restaurants ON restaurants.id = tables.restaurant_id").
		Where("restaurants.id = ? AND service_requests.status = ?", restaurant.ID, models.RequestStatusPending).
		Order("service_requests.created_at DESC").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pending requests", rows)
}

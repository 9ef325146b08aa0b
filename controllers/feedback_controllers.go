package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/realtime"
	"github.com/rennixx/ServiceQR/utils"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// CreateFeedback -> guest mengirim rating sekali setelah dilayani.
// Feedback tidak pernah diubah atau dihapus aplikasi.
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var req struct {
		TableID          uint    `json:"table_id" binding:"required"`
		ServiceRequestID *uint   `json:"service_request_id"`
		Rating           int     `json:"rating" binding:"required,min=1,max=5"`
		Comment          *string `json:"comment"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := fc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	feedback := models.Feedback{
		TableID:          req.TableID,
		ServiceRequestID: req.ServiceRequestID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	}

	if err := fc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastFeedbackCreate(feedback)

	utils.InfoLogger.Printf("Feedback created for table %s (rating=%d)", table.TableNumber, feedback.Rating)
	utils.RespondJSON(c, http.StatusCreated, "Feedback created", feedback)
}

// FeedbackRow adalah row feedback yang diperkaya nomor meja untuk dashboard.
type FeedbackRow struct {
	ID               uint      `json:"id"`
	TableID          uint      `json:"table_id"`
	TableNumber      string    `json:"table_number"`
	ServiceRequestID *uint     `json:"service_request_id"`
	Rating           int       `json:"rating"`
	Comment          *string   `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
}

// GetFeedbackByRestaurant -> feedback terbaru satu restoran, default 50
func (fc *FeedbackController) GetFeedbackByRestaurant(c *gin.Context) {
	slug := c.Param("slug")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var restaurant models.Restaurant
	if err := fc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	var rows []FeedbackRow
	if err := fc.DB.Table("feedbacks").
		Select(`feedbacks.id, feedbacks.table_id, tables.table_number,
			feedbacks.service_request_id, feedbacks.rating, feedbacks.comment, feedbacks.created_at`).
		Joins("JOIN tables ON tables.id = feedbacks.table_id").
		Where("tables.restaurant_id = ?", restaurant.ID).
		Order("feedbacks.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of feedback", rows)
}

// GetFeedbackStats -> total, rata-rata (1 desimal) dan distribusi rating 1-5
func (fc *FeedbackController) GetFeedbackStats(c *gin.Context) {
	slug := c.Param("slug")

	var restaurant models.Restaurant
	if err := fc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		return
	}

	var ratings []int
	if err := fc.DB.Table("feedbacks").
		Select("feedbacks.rating").
		Joins("JOIN tables ON tables.id = feedbacks.table_id").
		Where("tables.restaurant_id = ?", restaurant.ID).
		Scan(&ratings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum := 0
	for _, r := range ratings {
		sum += r
		if _, ok := distribution[r]; ok {
			distribution[r]++
		}
	}

	average := 0.0
	if len(ratings) > 0 {
		average = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	utils.RespondJSON(c, http.StatusOK, "Feedback stats", gin.H{
		"total":        len(ratings),
		"average":      average,
		"distribution": distribution,
	})
}

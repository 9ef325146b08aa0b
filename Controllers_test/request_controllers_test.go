package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/controllers"
	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/utils"
)

func setupTestDBForRequests() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:requests_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Restaurant{}, &models.Table{}, &models.ServiceRequest{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupRequestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	requestCtrl := controllers.NewRequestController(db)
	router.POST("/requests", requestCtrl.CreateRequest)
	router.POST("/requests/:request_id/done", requestCtrl.MarkRequestDone)
	router.GET("/restaurants/:slug/requests", requestCtrl.GetPendingRequests)
	return router
}

func seedRequestFixtures(db *gorm.DB, slug, qrToken string) (models.Restaurant, models.Table) {
	restaurant := models.Restaurant{Name: "Fixture " + slug, Slug: slug}
	db.Create(&restaurant)
	table := models.Table{RestaurantID: restaurant.ID, TableNumber: "1", QRCodeID: qrToken}
	db.Create(&table)
	return restaurant, table
}

func postRequest(router *gin.Engine, tableID uint, reqType string) *httptest.ResponseRecorder {
	payload := map[string]interface{}{"table_id": tableID, "type": reqType}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/requests", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRequest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	_, table := seedRequestFixtures(db, "req-create", "qr-req-create")
	router := setupRequestRouter(db)

	w := postRequest(router, table.ID, models.RequestTypeWaiter)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Request created successfully", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "waiter", data["type"])
	assert.Equal(t, "pending", data["status"])
}

func TestCreateRequestInvalidType(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	_, table := seedRequestFixtures(db, "req-invalid", "qr-req-invalid")
	router := setupRequestRouter(db)

	w := postRequest(router, table.ID, "coffee")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRequestUnknownTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	w := postRequest(router, 99999, models.RequestTypeWater)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Guest yang menekan tombol dua kali menghasilkan dua record pending
// terpisah, masing-masing bisa ditandai done sendiri.
func TestDuplicateRequestsStaySeparate(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	_, table := seedRequestFixtures(db, "req-duplicate", "qr-req-duplicate")
	router := setupRequestRouter(db)

	w1 := postRequest(router, table.ID, models.RequestTypeBill)
	w2 := postRequest(router, table.ID, models.RequestTypeBill)
	assert.Equal(t, http.StatusCreated, w1.Code)
	assert.Equal(t, http.StatusCreated, w2.Code)

	var pending []models.ServiceRequest
	db.Where("table_id = ? AND status = ?", table.ID, models.RequestStatusPending).Find(&pending)
	assert.Len(t, pending, 2)
	assert.NotEqual(t, pending[0].ID, pending[1].ID)

	// tandai yang pertama done, yang kedua tetap pending
	url := "/requests/" + strconv.Itoa(int(pending[0].ID)) + "/done"
	req, _ := http.NewRequest("POST", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var remaining []models.ServiceRequest
	db.Where("table_id = ? AND status = ?", table.ID, models.RequestStatusPending).Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, pending[1].ID, remaining[0].ID)
}

func TestMarkRequestDoneOnlyOnce(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	_, table := seedRequestFixtures(db, "req-done", "qr-req-done")
	router := setupRequestRouter(db)

	request := models.ServiceRequest{TableID: table.ID, Type: models.RequestTypeWaiter, Status: models.RequestStatusPending}
	db.Create(&request)

	url := "/requests/" + strconv.Itoa(int(request.ID)) + "/done"
	req, _ := http.NewRequest("POST", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Request marked as done", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "done", data["status"])

	// percobaan kedua ditolak
	req2, _ := http.NewRequest("POST", url, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusConflict, w2.Code)
}

func TestMarkRequestDoneNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	req, _ := http.NewRequest("POST", "/requests/99999/done", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPendingRequests(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	restaurant, table := seedRequestFixtures(db, "req-pending", "qr-req-pending")
	router := setupRequestRouter(db)

	now := time.Now()
	older := models.ServiceRequest{TableID: table.ID, Type: models.RequestTypeWater, Status: models.RequestStatusPending,
		CreatedAt: now.Add(-10 * time.Minute), UpdatedAt: now.Add(-10 * time.Minute)}
	newer := models.ServiceRequest{TableID: table.ID, Type: models.RequestTypeWaiter, Status: models.RequestStatusPending,
		CreatedAt: now.Add(-1 * time.Minute), UpdatedAt: now.Add(-1 * time.Minute)}
	done := models.ServiceRequest{TableID: table.ID, Type: models.RequestTypeBill, Status: models.RequestStatusDone,
		CreatedAt: now.Add(-30 * time.Minute), UpdatedAt: now.Add(-25 * time.Minute)}
	db.Create(&older)
	db.Create(&newer)
	db.Create(&done)

	req, _ := http.NewRequest("GET", "/restaurants/req-pending/requests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Pending requests", response["message"])

	// hanya pending, terbaru dulu, diperkaya info meja dan restoran
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "waiter", first["type"])
	assert.Equal(t, "1", first["table_number"])
	assert.Equal(t, restaurant.Slug, first["restaurant_slug"])
	second := data[1].(map[string]interface{})
	assert.Equal(t, "water", second["type"])
}

func TestGetPendingRequestsUnknownRestaurant(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForRequests()
	router := setupRequestRouter(db)

	req, _ := http.NewRequest("GET", "/restaurants/no-such-place/requests", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

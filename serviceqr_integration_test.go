package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/router"
	"github.com/rennixx/ServiceQR/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Seed restoran, meja & admin, lalu login -> token
// 1. Guest scan QR -> dapat table + restaurant + theme
// 2. Guest kirim dua request (waiter, bill)
// 3. Staff lihat pending list => 2 entry
// 4. Mark request pertama done, yang kedua tetap pending
// 5. Mark ulang yang sudah done => 409
// 6. Guest kirim feedback
// 7. Cek analytics => total sesuai
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	tableID := scanTableTest(t, r)

	firstID := createRequestTest(t, r, tableID, "waiter")
	secondID := createRequestTest(t, r, tableID, "bill")
	if firstID == secondID {
		t.Fatalf("expected two separate requests, both got id %d", firstID)
	}

	checkPendingTest(t, r, token, 2)

	markDoneTest(t, r, token, firstID)
	checkPendingTest(t, r, token, 1)

	// request yang sudah done tidak bisa di-done ulang
	markDoneAgainTest(t, r, token, firstID)

	createFeedbackTest(t, r, tableID)

	checkAnalyticsTest(t, r, token)
}

// setupTestDB -> migrasi model di SQLite in-memory + seed data
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
		&models.ServiceRequest{},
		&models.Feedback{},
		&models.DBChange{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	})

	restaurant := models.Restaurant{Name: "Mario Bistro", Slug: "mario-bistro"}
	db.Create(&restaurant)
	db.Create(&models.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "1",
		QRCodeID:     "qr-mario-1",
	})

	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body := map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Status {
		t.Fatalf("loginTest: status=false, msg=%s", resp.Message)
	}
	if resp.Data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}

	return resp.Data.Token
}

// scanTableTest -> GET /scan/:qr_code_id (public, guest)
func scanTableTest(t *testing.T, r *gin.Engine) uint {
	req := httptest.NewRequest(http.MethodGet, "/scan/qr-mario-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("scanTableTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Table struct {
				ID          uint   `json:"id"`
				TableNumber string `json:"table_number"`
			} `json:"table"`
			Restaurant struct {
				Slug string `json:"slug"`
			} `json:"restaurant"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Table.ID == 0 {
		t.Fatalf("scanTableTest: table not resolved, body=%s", w.Body.String())
	}
	if resp.Data.Restaurant.Slug != "mario-bistro" {
		t.Fatalf("scanTableTest: wrong restaurant %s", resp.Data.Restaurant.Slug)
	}

	return resp.Data.Table.ID
}

// createRequestTest -> POST /requests (public, guest)
func createRequestTest(t *testing.T, r *gin.Engine, tableID uint, reqType string) uint {
	bodyData := map[string]interface{}{
		"table_id": tableID,
		"type":     reqType,
	}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("createRequestTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Status != "pending" {
		t.Fatalf("createRequestTest: expected status 'pending', got %s", resp.Data.Status)
	}

	return resp.Data.ID
}

// checkPendingTest -> GET /admin/restaurants/:slug/requests
func checkPendingTest(t *testing.T, r *gin.Engine, token string, want int) {
	req := httptest.NewRequest(http.MethodGet, "/admin/restaurants/mario-bistro/requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("checkPendingTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   []struct {
			ID          uint   `json:"id"`
			TableNumber string `json:"table_number"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != want {
		t.Fatalf("checkPendingTest: want %d pending, got %d", want, len(resp.Data))
	}
	if want > 0 && resp.Data[0].TableNumber != "1" {
		t.Fatalf("checkPendingTest: expected table_number '1', got %s", resp.Data[0].TableNumber)
	}
}

// markDoneTest -> POST /admin/requests/:request_id/done
func markDoneTest(t *testing.T, r *gin.Engine, token string, requestID uint) {
	req := httptest.NewRequest(http.MethodPost,
		"/admin/requests/"+uintToString(requestID)+"/done", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("markDoneTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Status != "done" {
		t.Fatalf("markDoneTest: want 'done', got %s", resp.Data.Status)
	}
}

// markDoneAgainTest -> transisi kedua ditolak dengan 409
func markDoneAgainTest(t *testing.T, r *gin.Engine, token string, requestID uint) {
	req := httptest.NewRequest(http.MethodPost,
		"/admin/requests/"+uintToString(requestID)+"/done", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("markDoneAgainTest: expected 409, got %d, body=%s", w.Code, w.Body.String())
	}
}

// createFeedbackTest -> POST /feedback (public, guest)
func createFeedbackTest(t *testing.T, r *gin.Engine, tableID uint) {
	bodyData := map[string]interface{}{
		"table_id": tableID,
		"rating":   5,
		"comment":  "Pelayanan cepat",
	}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPost, "/feedback", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("createFeedbackTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
}

// checkAnalyticsTest -> GET /admin/restaurants/:slug/analytics
func checkAnalyticsTest(t *testing.T, r *gin.Engine, token string) {
	req := httptest.NewRequest(http.MethodGet, "/admin/restaurants/mario-bistro/analytics?days=7", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("checkAnalyticsTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			TotalRequests     int `json:"total_requests"`
			PendingRequests   int `json:"pending_requests"`
			CompletedRequests int `json:"completed_requests"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.TotalRequests != 2 {
		t.Fatalf("checkAnalyticsTest: want 2 total, got %d", resp.Data.TotalRequests)
	}
	if resp.Data.PendingRequests != 1 || resp.Data.CompletedRequests != 1 {
		t.Fatalf("checkAnalyticsTest: want 1 pending / 1 done, got %d / %d",
			resp.Data.PendingRequests, resp.Data.CompletedRequests)
	}
}

// Helper uintToString
func uintToString(num uint) string {
	return strconv.FormatUint(uint64(num), 10)
}

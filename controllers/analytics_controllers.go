package controllers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
	"github.com/rennixx/ServiceQR/services"
	"github.com/rennixx/ServiceQR/utils"
)

type AnalyticsController struct {
	Service *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: svc}
}

func (ac *AnalyticsController) metricsFromRequest(c *gin.Context) (*services.Metrics, string, bool) {
	slug := c.Param("slug")

	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, services.ErrUnsupportedWindow)
			return nil, slug, false
		}
		days = n
	}

	metrics, err := ac.Service.MetricsForRestaurant(slug, days)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedWindow):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return nil, slug, false
	}
	return metrics, slug, true
}

// GetAnalytics -> metrik lengkap satu restoran untuk window 7/30/90 hari
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	metrics, _, ok := ac.metricsFromRequest(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Analytics metrics", metrics)
}

// ExportCSV -> ringkasan plus daily volume sebagai file CSV
func (ac *AnalyticsController) ExportCSV(c *gin.Context) {
	metrics, slug, ok := ac.metricsFromRequest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"metric", "value"})
	w.Write([]string{"total_requests", strconv.Itoa(metrics.TotalRequests)})
	w.Write([]string{"pending_requests", strconv.Itoa(metrics.PendingRequests)})
	w.Write([]string{"completed_requests", strconv.Itoa(metrics.CompletedRequests)})
	w.Write([]string{"average_response_time_minutes", strconv.FormatFloat(metrics.AverageResponseTime, 'f', 1, 64)})
	for _, t := range []string{models.RequestTypeWaiter, models.RequestTypeWater, models.RequestTypeBill} {
		w.Write([]string{"requests_" + t, strconv.Itoa(metrics.RequestByType[t])})
	}

	w.Write([]string{})
	w.Write([]string{"date", "requests"})
	for _, day := range metrics.DailyVolume {
		w.Write([]string{day.Date, strconv.Itoa(day.Count)})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-analytics.csv", slug))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportChart -> bar chart daily volume sebagai PNG
func (ac *AnalyticsController) ExportChart(c *gin.Context) {
	metrics, _, ok := ac.metricsFromRequest(c)
	if !ok {
		return
	}

	if metrics.TotalRequests == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrNoAnalyticsData)
		return
	}

	bars := make([]chart.Value, 0, len(metrics.DailyVolume))
	for _, day := range metrics.DailyVolume {
		bars = append(bars, chart.Value{
			Label: day.Date,
			Value: float64(day.Count),
		})
	}

	graph := chart.BarChart{
		Title:    "Requests per day",
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ExportPDF -> ringkasan metrik sebagai dokumen PDF
func (ac *AnalyticsController) ExportPDF(c *gin.Context) {
	metrics, slug, ok := ac.metricsFromRequest(c)
	if !ok {
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Service Analytics - %s", slug))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Total requests: %d", metrics.TotalRequests),
		fmt.Sprintf("Pending: %d", metrics.PendingRequests),
		fmt.Sprintf("Completed: %d", metrics.CompletedRequests),
		fmt.Sprintf("Average response time: %.1f minutes", metrics.AverageResponseTime),
		fmt.Sprintf("Waiter: %d  Water: %d  Bill: %d",
			metrics.RequestByType[models.RequestTypeWaiter],
			metrics.RequestByType[models.RequestTypeWater],
			metrics.RequestByType[models.RequestTypeBill]),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Peak hours")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, peak := range metrics.PeakHours {
		pdf.Cell(0, 8, fmt.Sprintf("%s - %d requests", services.HourLabel(peak.Hour), peak.Count))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-analytics.pdf", slug))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

package services

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/models"
)

// Window granularities yang didukung halaman analytics
var supportedWindows = map[int]bool{7: true, 30: true, 90: true}

var ErrUnsupportedWindow = errors.New("unsupported analytics window, use 7, 30 or 90 days")

// AnalyticsService menghitung metrik service request per restoran.
// Now bisa di-inject supaya bucketing berbasis waktu bisa dites.
type AnalyticsService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		DB:  db,
		Now: time.Now,
	}
}

type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type DayBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Metrics struct {
	TotalRequests       int            `json:"total_requests"`
	PendingRequests     int            `json:"pending_requests"`
	CompletedRequests   int            `json:"completed_requests"`
	AverageResponseTime float64        `json:"average_response_time"` // menit, 1 desimal
	RequestByType       map[string]int `json:"request_by_type"`
	HourlyVolume        []HourBucket   `json:"hourly_volume"`
	DailyVolume         []DayBucket    `json:"daily_volume"`
	PeakHours           []HourBucket   `json:"peak_hours"`
}

// MetricsForRestaurant mengambil semua request restoran dalam window hari
// (inklusif dari tengah malam hari pertama) lalu menghitung semua metrik
// dari record set di memori. Tidak ada cache; setiap panggilan hitung ulang.
func (s *AnalyticsService) MetricsForRestaurant(slug string, days int) (*Metrics, error) {
	if !supportedWindows[days] {
		return nil, ErrUnsupportedWindow
	}

	var restaurant models.Restaurant
	if err := s.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, err
	}

	now := s.Now()
	start := windowStart(now, days)

	var requests []models.ServiceRequest
	if err := s.DB.
		Joins("JOIN tables ON tables.id = service_requests.table_id").
		Where("tables.restaurant_id = ? AND service_requests.created_at >= ?", restaurant.ID, start).
		Order("service_requests.created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	metrics := computeMetrics(requests, now, days)
	return &metrics, nil
}

// windowStart -> tengah malam lokal, days hari sebelum now
func windowStart(now time.Time, days int) time.Time {
	d := now.AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func computeMetrics(requests []models.ServiceRequest, now time.Time, days int) Metrics {
	m := Metrics{
		RequestByType: map[string]int{
			models.RequestTypeWaiter: 0,
			models.RequestTypeWater:  0,
			models.RequestTypeBill:   0,
		},
		HourlyVolume: make([]HourBucket, 0, 24),
		DailyVolume:  []DayBucket{},
		PeakHours:    []HourBucket{},
	}

	m.TotalRequests = len(requests)

	var totalMinutes float64
	for _, r := range requests {
		switch r.Status {
		case models.RequestStatusPending:
			m.PendingRequests++
		case models.RequestStatusDone:
			m.CompletedRequests++
			totalMinutes += r.UpdatedAt.Sub(r.CreatedAt).Minutes()
		}
		m.RequestByType[r.Type]++
	}

	// rata-rata response time hanya dari request done, 1 desimal
	if m.CompletedRequests > 0 {
		avg := totalMinutes / float64(m.CompletedRequests)
		m.AverageResponseTime = math.Round(avg*10) / 10
	}

	// 24 bucket per jam, anchor now-24h dibulatkan ke awal jam,
	// label pakai jam dinding bukan posisi bucket
	anchor := now.Add(-24 * time.Hour)
	hourStart := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), anchor.Hour(), 0, 0, 0, anchor.Location())
	for i := 0; i < 24; i++ {
		bucketStart := hourStart.Add(time.Duration(i) * time.Hour)
		bucketEnd := bucketStart.Add(time.Hour)

		count := 0
		for _, r := range requests {
			if !r.CreatedAt.Before(bucketStart) && r.CreatedAt.Before(bucketEnd) {
				count++
			}
		}
		m.HourlyVolume = append(m.HourlyVolume, HourBucket{Hour: bucketStart.Hour(), Count: count})
	}

	// satu bucket per hari, dari awal window sampai hari ini inklusif
	start := windowStart(now, days)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		next := d.AddDate(0, 0, 1)

		count := 0
		for _, r := range requests {
			if !r.CreatedAt.Before(d) && r.CreatedAt.Before(next) {
				count++
			}
		}
		m.DailyVolume = append(m.DailyVolume, DayBucket{Date: d.Format("2006-01-02"), Count: count})
	}

	// peak hours dari seluruh window, top 5.
	// Tie break tidak dispesifikasikan upstream; dipakai jam ascending
	// supaya deterministik.
	byHour := make(map[int]int)
	for _, r := range requests {
		byHour[r.CreatedAt.Hour()]++
	}
	peaks := make([]HourBucket, 0, len(byHour))
	for hour, count := range byHour {
		peaks = append(peaks, HourBucket{Hour: hour, Count: count})
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].Count != peaks[j].Count {
			return peaks[i].Count > peaks[j].Count
		}
		return peaks[i].Hour < peaks[j].Hour
	})
	if len(peaks) > 5 {
		peaks = peaks[:5]
	}
	m.PeakHours = peaks

	return m
}

// HourLabel memformat jam dinding untuk label chart.
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour < 12:
		return strconv.Itoa(hour) + " AM"
	default:
		return strconv.Itoa(hour-12) + " PM"
	}
}

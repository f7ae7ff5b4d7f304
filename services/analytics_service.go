package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/models"
)

// WasteTypeCount is one bucket of the waste type distribution.
type WasteTypeCount struct {
	WasteType string `json:"waste_type"`
	Count     int64  `json:"count"`
}

// DashboardStats aggregates the numbers shown on the dashboard.
type DashboardStats struct {
	TotalAppointments     int64            `json:"total_appointments"`
	CompletedAppointments int64            `json:"completed_appointments"`
	PendingAppointments   int64            `json:"pending_appointments"`
	CompletionRate        float64          `json:"completion_rate"`
	WasteTypes            []WasteTypeCount `json:"waste_types"`
	MonthlyTrends         map[string]int64 `json:"monthly_trends"`
}

// AnalyticsService computes role-scoped aggregates over appointments.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates an analytics service bound to db
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// scoped returns the appointment query visible to the user: residents see
// their own, elevated users see everything.
func (s *AnalyticsService) scoped(user *models.User) *gorm.DB {
	q := s.db.Model(&models.Appointment{})
	if !user.HasElevatedAccess() {
		q = q.Where("customer_id = ?", user.ID)
	}
	return q
}

// DashboardStats returns the user's dashboard aggregates.
func (s *AnalyticsService) DashboardStats(user *models.User) (*DashboardStats, error) {
	stats := &DashboardStats{MonthlyTrends: make(map[string]int64)}

	if err := s.scoped(user).Count(&stats.TotalAppointments).Error; err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	if err := s.scoped(user).Where("status = ?", models.StatusCompleted).
		Count(&stats.CompletedAppointments).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed appointments: %w", err)
	}
	if err := s.scoped(user).Where("status IN ?", []string{models.StatusRequested, models.StatusScheduled}).
		Count(&stats.PendingAppointments).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending appointments: %w", err)
	}

	if stats.TotalAppointments > 0 {
		rate := float64(stats.CompletedAppointments) / float64(stats.TotalAppointments) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}

	if err := s.scoped(user).
		Select("waste_type, count(*) as count").
		Group("waste_type").
		Scan(&stats.WasteTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate waste types: %w", err)
	}

	// Creation counts grouped by YYYY-MM for the trend chart.
	var appts []models.Appointment
	if err := s.scoped(user).Select("created_at").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to load appointments for trends: %w", err)
	}
	for _, a := range appts {
		stats.MonthlyTrends[a.CreatedAt.Format("2006-01")]++
	}

	return stats, nil
}

package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"gorm.io/gorm"
)

// Alert severities for the dashboard.
const (
	AlertTypeError   = "error"
	AlertTypeWarning = "warning"
	AlertTypeInfo    = "info"
)

// LowLabourThreshold is the headcount below which a running project is
// flagged as understaffed.
const LowLabourThreshold = 5

type TrendPoint struct {
	Day     string `json:"day"`  // "Mon"
	Date    string `json:"date"` // "2006-01-02"
	Workers int64  `json:"workers"`
}

type GlobalStats struct {
	TotalProjects             int64            `json:"total_projects"`
	ActiveProjects            int64            `json:"active_projects"`
	TotalLabour               int64            `json:"total_labour"`
	CityCount                 int64            `json:"city_count"`
	ProjectStatusDistribution map[string]int64 `json:"project_status_distribution"`
	WeeklyLabourTrend         []TrendPoint     `json:"weekly_labour_trend"`
}

type CityStats struct {
	City           string `json:"city"`
	TotalProjects  int64  `json:"total_projects"`
	RunningCount   int64  `json:"running_count"`
	CompletedCount int64  `json:"completed_count"`
}

type Alert struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DashboardService is the read side: every call recomputes from the current
// store contents. State is small and changes rarely compared to how often the
// dashboard is viewed, so nothing is cached.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// GlobalStats builds the dashboard cards and the 7-day attendance trend.
func (s *DashboardService) GlobalStats() (*GlobalStats, error) {
	stats := &GlobalStats{
		ProjectStatusDistribution: make(map[string]int64),
	}

	var projects []models.Project
	if err := s.db.Preload("City").Find(&projects).Error; err != nil {
		return nil, err
	}

	stats.TotalProjects = int64(len(projects))
	cities := make(map[string]struct{})
	for _, p := range projects {
		if p.Status != models.ProjectStatusCompleted {
			stats.ActiveProjects++
		}
		if p.City != nil {
			cities[p.City.Name] = struct{}{}
		}
		if p.Status != "" {
			stats.ProjectStatusDistribution[p.Status]++
		}
	}
	stats.CityCount = int64(len(cities))

	// Team strength, not daily attendance: the count stays stable even when
	// nobody has marked attendance yet today.
	if err := s.db.Model(&models.Labour{}).Where("is_active = ?", true).
		Count(&stats.TotalLabour).Error; err != nil {
		return nil, err
	}

	trend, err := s.weeklyTrend()
	if err != nil {
		return nil, err
	}
	stats.WeeklyLabourTrend = trend

	return stats, nil
}

// weeklyTrend counts PRESENT/HALF_DAY attendance rows per day for the last 7
// days ending today. Counted per record: a worker present on two sites the
// same day counts twice here, unlike the ledger's per-name conflict rule.
func (s *DashboardService) weeklyTrend() ([]TrendPoint, error) {
	today := time.Now()
	start := today.AddDate(0, 0, -6)

	var records []models.Attendance
	err := s.db.
		Where("date BETWEEN ? AND ?", start.Format(utils.DateLayout), today.Format(utils.DateLayout)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int64)
	for _, a := range records {
		status := strings.ToUpper(a.Status)
		if status == models.AttendanceStatusPresent || status == models.AttendanceStatusHalfDay {
			byDate[a.Date]++
		}
	}

	// Always exactly 7 points, zero-filled for empty days.
	trend := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := d.Format(utils.DateLayout)
		trend = append(trend, TrendPoint{
			Day:     d.Format("Mon"),
			Date:    key,
			Workers: byDate[key],
		})
	}
	return trend, nil
}

// CityStats groups projects by city name. Projects without a city are left
// out of the grouping rather than failing the report.
func (s *DashboardService) CityStats() ([]CityStats, error) {
	var projects []models.Project
	if err := s.db.Preload("City").Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}

	index := make(map[string]int)
	stats := make([]CityStats, 0)
	for _, p := range projects {
		if p.City == nil {
			continue
		}
		i, ok := index[p.City.Name]
		if !ok {
			i = len(stats)
			index[p.City.Name] = i
			stats = append(stats, CityStats{City: p.City.Name})
		}
		stats[i].TotalProjects++
		switch p.Status {
		case models.ProjectStatusRunning:
			stats[i].RunningCount++
		case models.ProjectStatusCompleted:
			stats[i].CompletedCount++
		}
	}
	return stats, nil
}

// Alerts emits at most one alert per project, in project id order. Completed
// projects and adequately staffed running projects stay quiet.
func (s *DashboardService) Alerts() ([]Alert, error) {
	var projects []models.Project
	if err := s.db.Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0)
	for _, p := range projects {
		switch p.Status {
		case models.ProjectStatusDelayed:
			alerts = append(alerts, Alert{
				Type:    AlertTypeError,
				Title:   "Project Delayed: " + p.Name,
				Message: "Immediate attention required.",
			})
		case models.ProjectStatusOnHold:
			alerts = append(alerts, Alert{
				Type:    AlertTypeWarning,
				Title:   "Project On Hold: " + p.Name,
				Message: "Waiting for clearance.",
			})
		case models.ProjectStatusRunning:
			var count int64
			if err := s.db.Model(&models.Labour{}).
				Where("project_id = ? AND is_active = ?", p.ID, true).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count < LowLabourThreshold {
				alerts = append(alerts, Alert{
					Type:    AlertTypeInfo,
					Title:   "Low Labour: " + p.Name,
					Message: fmt.Sprintf("Only %d workers.", count),
				})
			}
		}
	}
	return alerts, nil
}

// RecentUpdates returns the latest site updates for the dashboard feed.
func (s *DashboardService) RecentUpdates() ([]models.SiteUpdate, error) {
	var updates []models.SiteUpdate
	err := s.db.Preload("Project").
		Order("update_time DESC").
		Limit(10).
		Find(&updates).Error
	return updates, err
}

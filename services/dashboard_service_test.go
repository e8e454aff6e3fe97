package services

import (
	"testing"
	"time"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.City{}, &models.Project{}, &models.Labour{},
		&models.Attendance{}, &models.SiteUpdate{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	assert.NoError(t, db.Create(value).Error)
}

func TestGlobalStats(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	mumbai := models.City{Name: "Mumbai", State: "Maharashtra"}
	pune := models.City{Name: "Pune", State: "Maharashtra"}
	mustCreate(t, db, &mumbai)
	mustCreate(t, db, &pune)

	p1 := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning, CityID: &mumbai.ID}
	p2 := models.Project{Name: "Tower B", ClientName: "Acme", Status: models.ProjectStatusCompleted, CityID: &mumbai.ID}
	p3 := models.Project{Name: "Mall", ClientName: "Retailco", Status: models.ProjectStatusDelayed, CityID: &pune.ID}
	p4 := models.Project{Name: "Warehouse", ClientName: "Logico", Status: models.ProjectStatusOnHold}
	mustCreate(t, db, &p1)
	mustCreate(t, db, &p2)
	mustCreate(t, db, &p3)
	mustCreate(t, db, &p4)

	mustCreate(t, db, &models.Labour{Name: "W1", Type: "Mason", ProjectID: p1.ID, IsActive: true})
	mustCreate(t, db, &models.Labour{Name: "W2", Type: "Helper", ProjectID: p1.ID, IsActive: true})
	mustCreate(t, db, &models.Labour{Name: "W3", Type: "Helper", ProjectID: p3.ID, IsActive: false})

	stats, err := svc.GlobalStats()
	assert.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalProjects)
	assert.EqualValues(t, 3, stats.ActiveProjects) // completed excluded
	assert.EqualValues(t, 2, stats.TotalLabour)    // active workers only
	assert.EqualValues(t, 2, stats.CityCount)      // cityless project ignored
	assert.EqualValues(t, 1, stats.ProjectStatusDistribution[models.ProjectStatusRunning])
	assert.EqualValues(t, 1, stats.ProjectStatusDistribution[models.ProjectStatusCompleted])
	assert.EqualValues(t, 1, stats.ProjectStatusDistribution[models.ProjectStatusDelayed])
	assert.EqualValues(t, 1, stats.ProjectStatusDistribution[models.ProjectStatusOnHold])
}

func TestWeeklyTrendZeroFilled(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.GlobalStats()
	assert.NoError(t, err)
	assert.Len(t, stats.WeeklyLabourTrend, 7)
	for _, point := range stats.WeeklyLabourTrend {
		assert.EqualValues(t, 0, point.Workers)
		assert.NotEmpty(t, point.Day)
	}
	last := stats.WeeklyLabourTrend[6]
	assert.Equal(t, utils.Today(), last.Date)
	assert.Equal(t, time.Now().Format("Mon"), last.Day)
}

func TestWeeklyTrendCountsPerRecord(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	p := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning}
	mustCreate(t, db, &p)
	w := models.Labour{Name: "W1", Type: "Mason", ProjectID: p.ID, IsActive: true}
	mustCreate(t, db, &w)

	today := utils.Today()
	yesterday := time.Now().AddDate(0, 0, -1).Format(utils.DateLayout)
	lastWeek := time.Now().AddDate(0, 0, -8).Format(utils.DateLayout)

	mustCreate(t, db, &models.Attendance{LabourID: w.ID, ProjectID: p.ID, Date: today, Status: "PRESENT"})
	mustCreate(t, db, &models.Attendance{LabourID: w.ID, ProjectID: p.ID, Date: yesterday, Status: "HALF_DAY"})
	// Outside the window and an absence inside it: both invisible to the trend.
	mustCreate(t, db, &models.Attendance{LabourID: w.ID, ProjectID: p.ID, Date: lastWeek, Status: "PRESENT"})
	mustCreate(t, db, &models.Attendance{LabourID: w.ID, ProjectID: p.ID, Date: today, Status: "ABSENT"})

	stats, err := svc.GlobalStats()
	assert.NoError(t, err)
	trend := stats.WeeklyLabourTrend
	assert.Len(t, trend, 7)
	assert.EqualValues(t, 1, trend[6].Workers) // today
	assert.EqualValues(t, 1, trend[5].Workers) // yesterday, half days count as presence
	assert.EqualValues(t, 0, trend[0].Workers)
}

func TestCityStatsGrouping(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	mumbai := models.City{Name: "Mumbai", State: "Maharashtra"}
	pune := models.City{Name: "Pune", State: "Maharashtra"}
	mustCreate(t, db, &mumbai)
	mustCreate(t, db, &pune)

	mustCreate(t, db, &models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning, CityID: &mumbai.ID})
	mustCreate(t, db, &models.Project{Name: "Tower B", ClientName: "Acme", Status: models.ProjectStatusCompleted, CityID: &mumbai.ID})
	mustCreate(t, db, &models.Project{Name: "Mall", ClientName: "Retailco", Status: models.ProjectStatusOnHold, CityID: &pune.ID})
	mustCreate(t, db, &models.Project{Name: "Orphan", ClientName: "Nobody", Status: models.ProjectStatusRunning})

	stats, err := svc.CityStats()
	assert.NoError(t, err)
	assert.Len(t, stats, 2)

	assert.Equal(t, "Mumbai", stats[0].City)
	assert.EqualValues(t, 2, stats[0].TotalProjects)
	assert.EqualValues(t, 1, stats[0].RunningCount)
	assert.EqualValues(t, 1, stats[0].CompletedCount)

	assert.Equal(t, "Pune", stats[1].City)
	assert.EqualValues(t, 1, stats[1].TotalProjects)
	assert.EqualValues(t, 0, stats[1].RunningCount)
	assert.EqualValues(t, 0, stats[1].CompletedCount)
}

func TestAlertsOnePerProject(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	delayed := models.Project{Name: "Mall", ClientName: "Retailco", Status: models.ProjectStatusDelayed}
	onHold := models.Project{Name: "Warehouse", ClientName: "Logico", Status: models.ProjectStatusOnHold}
	thin := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning}
	staffed := models.Project{Name: "Tower B", ClientName: "Acme", Status: models.ProjectStatusRunning}
	done := models.Project{Name: "Villa", ClientName: "Owner", Status: models.ProjectStatusCompleted}
	mustCreate(t, db, &delayed)
	mustCreate(t, db, &onHold)
	mustCreate(t, db, &thin)
	mustCreate(t, db, &staffed)
	mustCreate(t, db, &done)

	for i := 0; i < 3; i++ {
		mustCreate(t, db, &models.Labour{Name: "T", Type: "Mason", ProjectID: thin.ID, IsActive: true})
	}
	for i := 0; i < 5; i++ {
		mustCreate(t, db, &models.Labour{Name: "S", Type: "Mason", ProjectID: staffed.ID, IsActive: true})
	}

	alerts, err := svc.Alerts()
	assert.NoError(t, err)
	assert.Len(t, alerts, 3)

	assert.Equal(t, AlertTypeError, alerts[0].Type)
	assert.Equal(t, "Project Delayed: Mall", alerts[0].Title)
	assert.Equal(t, "Immediate attention required.", alerts[0].Message)

	assert.Equal(t, AlertTypeWarning, alerts[1].Type)
	assert.Equal(t, "Project On Hold: Warehouse", alerts[1].Title)
	assert.Equal(t, "Waiting for clearance.", alerts[1].Message)

	assert.Equal(t, AlertTypeInfo, alerts[2].Type)
	assert.Equal(t, "Low Labour: Tower A", alerts[2].Title)
	assert.Equal(t, "Only 3 workers.", alerts[2].Message)
}

func TestLowLabourCountsActiveOnly(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	p := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning}
	mustCreate(t, db, &p)
	for i := 0; i < 5; i++ {
		mustCreate(t, db, &models.Labour{Name: "W", Type: "Mason", ProjectID: p.ID, IsActive: i < 4})
	}

	alerts, err := svc.Alerts()
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, AlertTypeInfo, alerts[0].Type)
	assert.Equal(t, "Only 4 workers.", alerts[0].Message)
}

func TestRecentUpdatesOrderedAndCapped(t *testing.T) {
	db := setupDashboardDB(t)
	svc := NewDashboardService(db)

	p := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning}
	mustCreate(t, db, &p)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		mustCreate(t, db, &models.SiteUpdate{
			ProjectID:  p.ID,
			Content:    "update",
			UpdateTime: base.Add(time.Duration(i) * time.Hour),
		})
	}

	updates, err := svc.RecentUpdates()
	assert.NoError(t, err)
	assert.Len(t, updates, 10)
	for i := 1; i < len(updates); i++ {
		assert.False(t, updates[i].UpdateTime.After(updates[i-1].UpdateTime))
	}
	assert.Equal(t, "Tower A", updates[0].Project.Name)
}

package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/engineeringdigest/buildtrack-app/controllers"
	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
)

func setupTestDBForSupervisor(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.City{}, &models.Project{}, &models.SiteUpdate{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// asSupervisor stamps a supervisor identity with the given user id.
func asSupervisor(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", "ravi")
		c.Set("role", models.RoleSupervisor)
		c.Next()
	}
}

func setupSupervisorRouter(db *gorm.DB, identity gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(identity)
	supervisorCtrl := controllers.NewSupervisorController(db)
	router.GET("/supervisor/my-projects", supervisorCtrl.MyProjects)
	router.POST("/supervisor/weekly-update", supervisorCtrl.WeeklyUpdate)
	return router
}

func TestMyProjects(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSupervisor(t)

	supervisor := models.User{Username: "ravi", PasswordHash: "x", Role: models.RoleSupervisor, IsActive: true}
	db.Create(&supervisor)

	mine := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning, SupervisorID: &supervisor.ID}
	someoneElses := models.Project{Name: "Mall", ClientName: "Retailco", Status: models.ProjectStatusRunning}
	db.Create(&mine)
	db.Create(&someoneElses)

	router := setupSupervisorRouter(db, asSupervisor(supervisor.ID))
	req, _ := http.NewRequest("GET", "/supervisor/my-projects", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Tower A", first["name"])
}

func TestWeeklyUpdateAutoStartsOnHoldProject(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSupervisor(t)

	supervisor := models.User{Username: "ravi", PasswordHash: "x", Role: models.RoleSupervisor, IsActive: true}
	db.Create(&supervisor)
	project := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusOnHold, SupervisorID: &supervisor.ID}
	db.Create(&project)

	router := setupSupervisorRouter(db, asSupervisor(supervisor.ID))

	payload := map[string]interface{}{
		"project_id":   project.ID,
		"labour_count": 12,
		"remark":       "Slab work resumed",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/supervisor/weekly-update", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Project
	db.First(&reloaded, project.ID)
	assert.Equal(t, models.ProjectStatusRunning, reloaded.Status)
	assert.Equal(t, 12, reloaded.LabourCount)

	var update models.SiteUpdate
	assert.NoError(t, db.Where("project_id = ?", project.ID).First(&update).Error)
	assert.Contains(t, update.Content, "Weekly Report: 12 avg workers")
	assert.Contains(t, update.Content, "Slab work resumed")
}

func TestWeeklyUpdateForbiddenForOtherSupervisor(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSupervisor(t)

	owner := models.User{Username: "ravi", PasswordHash: "x", Role: models.RoleSupervisor, IsActive: true}
	intruder := models.User{Username: "sanjay", PasswordHash: "x", Role: models.RoleSupervisor, IsActive: true}
	db.Create(&owner)
	db.Create(&intruder)
	project := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning, SupervisorID: &owner.ID}
	db.Create(&project)

	router := setupSupervisorRouter(db, asSupervisor(intruder.ID))

	payload := map[string]interface{}{"project_id": project.ID, "labour_count": 5}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/supervisor/weekly-update", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWeeklyUpdateAdminBypassesOwnership(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSupervisor(t)

	owner := models.User{Username: "ravi", PasswordHash: "x", Role: models.RoleSupervisor, IsActive: true}
	db.Create(&owner)
	project := models.Project{Name: "Tower A", ClientName: "Acme", Status: models.ProjectStatusRunning, SupervisorID: &owner.ID}
	db.Create(&project)

	router := setupSupervisorRouter(db, asAdmin())

	payload := map[string]interface{}{"project_id": project.ID, "labour_count": 8}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/supervisor/weekly-update", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

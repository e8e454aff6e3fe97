package controllers

import (
	"errors"
	"net/http"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/services"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LabourController struct {
	DB         *gorm.DB
	Attendance *services.AttendanceService
}

func NewLabourController(db *gorm.DB) *LabourController {
	return &LabourController{
		DB:         db,
		Attendance: services.NewAttendanceService(db),
	}
}

// GetTeam lists a project's active workers.
func (lc *LabourController) GetTeam(c *gin.Context) {
	projectID := c.Param("project_id")

	var team []models.Labour
	if err := lc.DB.Where("project_id = ? AND is_active = ?", projectID, true).Find(&team).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project team", team)
}

// AddWorker assigns a new worker to a project. A worker with the same name on
// another project is a separate row on purpose; the ledger reconciles by name.
func (lc *LabourController) AddWorker(c *gin.Context) {
	var req struct {
		ProjectID uint    `json:"project_id" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		Type      string  `json:"type"`
		Wage      float64 `json:"wage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var project models.Project
	if err := lc.DB.First(&project, req.ProjectID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	worker := models.Labour{
		Name:      req.Name,
		Type:      req.Type,
		DailyWage: req.Wage,
		ProjectID: project.ID,
		IsActive:  true,
	}
	if err := lc.DB.Create(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New worker added: %s (%s) on project %d", worker.Name, worker.Type, project.ID)
	utils.RespondJSON(c, http.StatusCreated, "Worker added", worker)
}

// UpdateWorker patches name, trade or wage.
func (lc *LabourController) UpdateWorker(c *gin.Context) {
	var req struct {
		Name *string  `json:"name"`
		Type *string  `json:"type"`
		Wage *float64 `json:"wage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var worker models.Labour
	if err := lc.DB.First(&worker, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("worker not found"))
		return
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Type != nil {
		worker.Type = *req.Type
	}
	if req.Wage != nil {
		worker.DailyWage = *req.Wage
	}

	if err := lc.DB.Save(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker updated successfully", worker)
}

// DeleteWorker soft-deletes: the row stays so past attendance keeps its link.
func (lc *LabourController) DeleteWorker(c *gin.Context) {
	var worker models.Labour
	if err := lc.DB.First(&worker, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("worker not found"))
		return
	}

	worker.IsActive = false
	if err := lc.DB.Save(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Worker %d deactivated", worker.ID)
	utils.RespondJSON(c, http.StatusOK, "Worker deactivated", gin.H{
		"id": worker.ID,
	})
}

// MarkAttendance submits a bulk attendance batch through the conflict ledger.
// Per-record outcomes come back in the data; if anything was rejected the
// call answers 400 with the first rejection's message.
func (lc *LabourController) MarkAttendance(c *gin.Context) {
	var entries []services.AttendanceEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(entries) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no attendance records submitted"))
		return
	}

	caller := identityFromContext(c)
	results, err := lc.Attendance.SubmitAttendance(caller, entries)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, r := range results {
		if !r.Accepted {
			utils.RespondJSON(c, http.StatusBadRequest, r.Error, results)
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Attendance updated", results)
}

// GetAttendance lists a project's attendance sheet for a date (default today).
func (lc *LabourController) GetAttendance(c *gin.Context) {
	projectID := c.Param("project_id")

	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var project models.Project
	if err := lc.DB.First(&project, projectID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	records, err := lc.Attendance.GetProjectAttendance(project.ID, date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Attendance for "+date, records)
}

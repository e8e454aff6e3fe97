package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SupervisorController struct {
	DB *gorm.DB
}

func NewSupervisorController(db *gorm.DB) *SupervisorController {
	return &SupervisorController{DB: db}
}

// MyProjects lists the projects assigned to the calling supervisor.
func (sc *SupervisorController) MyProjects(c *gin.Context) {
	caller := identityFromContext(c)

	var projects []models.Project
	if err := sc.DB.Preload("City").
		Where("supervisor_id = ?", caller.UserID).
		Find(&projects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My projects", projects)
}

// ownsProject checks the caller supervises the project; admins bypass.
func (sc *SupervisorController) ownsProject(caller models.Identity, project *models.Project) bool {
	if caller.IsAdmin() {
		return true
	}
	return project.SupervisorID != nil && *project.SupervisorID == caller.UserID
}

// WeeklyUpdate records an average headcount and a remark for the week.
func (sc *SupervisorController) WeeklyUpdate(c *gin.Context) {
	var req struct {
		ProjectID   uint   `json:"project_id" binding:"required"`
		LabourCount int    `json:"labour_count" binding:"min=0"`
		Remark      string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	caller := identityFromContext(c)

	var project models.Project
	if err := sc.DB.First(&project, req.ProjectID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}
	if !sc.ownsProject(caller, &project) {
		utils.RespondError(c, http.StatusForbidden, errors.New("you are not authorized to update this project"))
		return
	}

	project.LabourCount = req.LabourCount
	if req.LabourCount > 0 && project.Status == models.ProjectStatusOnHold {
		project.Status = models.ProjectStatusRunning
	}
	if err := sc.DB.Save(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	update := models.SiteUpdate{
		ProjectID:  project.ID,
		Content:    fmt.Sprintf("Weekly Report: %d avg workers. Notes: %s", req.LabourCount, req.Remark),
		UpdateTime: time.Now(),
	}
	if err := sc.DB.Create(&update).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Weekly update on project %d by %s", project.ID, caller.Username)
	utils.RespondJSON(c, http.StatusOK, "Weekly update recorded successfully", update)
}

// DailyUpdate receives the daily site report as multipart form data: the
// headcount, a remark, an optional status override and up to two photos.
func (sc *SupervisorController) DailyUpdate(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.PostForm("project_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid project_id"))
		return
	}
	labourCount, err := strconv.Atoi(c.PostForm("labour_count"))
	if err != nil || labourCount < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid labour_count"))
		return
	}
	remark := c.PostForm("remark")
	status := c.PostForm("status")

	caller := identityFromContext(c)

	var project models.Project
	if err := sc.DB.First(&project, uint(projectID)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}
	if !sc.ownsProject(caller, &project) {
		utils.RespondError(c, http.StatusForbidden, errors.New("you are not authorized to update this project"))
		return
	}

	project.LabourCount = labourCount
	if status != "" {
		if validProjectStatus(status) {
			project.Status = status
		} else {
			utils.InfoLogger.Printf("Invalid status received: %s", status)
		}
	} else if labourCount > 0 && project.Status == models.ProjectStatusOnHold {
		// Auto-start when workers show up and no explicit status was sent.
		project.Status = models.ProjectStatusRunning
	}
	if err := sc.DB.Save(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	update := models.SiteUpdate{
		ProjectID:  project.ID,
		Content:    fmt.Sprintf("Daily Report: %d workers. Remark: %s", labourCount, remark),
		UpdateTime: time.Now(),
	}

	if photo, err := c.FormFile("photo1"); err == nil {
		url, err := utils.SaveUploadedFile(c, photo)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		update.PhotoURL1 = url
	}
	if photo, err := c.FormFile("photo2"); err == nil {
		url, err := utils.SaveUploadedFile(c, photo)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		update.PhotoURL2 = url
	}

	if err := sc.DB.Create(&update).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Daily update on project %d by %s (%d workers)", project.ID, caller.Username, labourCount)
	utils.RespondJSON(c, http.StatusOK, "Daily update recorded", update)
}

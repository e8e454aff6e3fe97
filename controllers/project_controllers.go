package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/services"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectController struct {
	DB       *gorm.DB
	Projects *services.ProjectService
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{
		DB:       db,
		Projects: services.NewProjectService(db),
	}
}

type projectRequest struct {
	Name          string   `json:"name" binding:"required"`
	ClientName    string   `json:"client_name" binding:"required"`
	CityID        *uint    `json:"city_id"`
	SupervisorID  *uint    `json:"supervisor_id"`
	StartDate     string   `json:"start_date"`
	Location      string   `json:"location"`
	PlotNo        string   `json:"plot_no"`
	Colony        string   `json:"colony"`
	Pincode       string   `json:"pincode"`
	District      string   `json:"district"`
	State         string   `json:"state"`
	ProjectType   string   `json:"project_type"`
	SquareFeet    *float64 `json:"square_feet"`
	Budget        *float64 `json:"budget"`
	ReraNumber    string   `json:"rera_number"`
	FireNocNumber string   `json:"fire_noc_number"`
	Status        string   `json:"status"`
}

// GetAllProjects lists projects with derived labour counts.
func (pc *ProjectController) GetAllProjects(c *gin.Context) {
	projects, err := pc.Projects.GetAllProjects()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of projects", projects)
}

// GetProjectByID returns one project for the edit/audit views.
func (pc *ProjectController) GetProjectByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := pc.Projects.GetProject(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project detail", project)
}

// CreateProject registers a new project. City is mandatory and must exist;
// the supervisor, when given, must exist too. New projects start RUNNING.
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.CityID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("city_id is required"))
		return
	}

	startDate := ""
	if req.StartDate != "" {
		parsed, err := utils.ParseDate(req.StartDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		startDate = parsed
	}

	var city models.City
	if err := pc.DB.First(&city, *req.CityID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("city not found"))
		return
	}

	project := models.Project{
		Name:          req.Name,
		ClientName:    req.ClientName,
		StartDate:     startDate,
		CityID:        &city.ID,
		Location:      req.Location,
		PlotNo:        req.PlotNo,
		Colony:        req.Colony,
		Pincode:       req.Pincode,
		District:      req.District,
		State:         req.State,
		ProjectType:   req.ProjectType,
		SquareFeet:    req.SquareFeet,
		Budget:        req.Budget,
		ReraNumber:    req.ReraNumber,
		FireNocNumber: req.FireNocNumber,
		Status:        models.ProjectStatusRunning,
		LabourCount:   0,
	}

	if req.SupervisorID != nil {
		var supervisor models.User
		if err := pc.DB.First(&supervisor, *req.SupervisorID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("supervisor not found"))
			return
		}
		project.SupervisorID = &supervisor.ID
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New project created: %s (city=%s)", project.Name, city.Name)
	utils.RespondJSON(c, http.StatusCreated, "Project created", project)
}

// UpdateProject is the full edit: required basics, everything else optional.
// A nil supervisor_id clears the assignment.
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var project models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	project.Name = req.Name
	project.ClientName = req.ClientName
	if req.StartDate != "" {
		parsed, err := utils.ParseDate(req.StartDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		project.StartDate = parsed
	}
	project.Location = req.Location
	if req.PlotNo != "" {
		project.PlotNo = req.PlotNo
	}
	if req.Colony != "" {
		project.Colony = req.Colony
	}
	if req.Pincode != "" {
		project.Pincode = req.Pincode
	}
	if req.District != "" {
		project.District = req.District
	}
	if req.State != "" {
		project.State = req.State
	}
	if req.ProjectType != "" {
		project.ProjectType = req.ProjectType
	}
	if req.SquareFeet != nil {
		project.SquareFeet = req.SquareFeet
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.ReraNumber != "" {
		project.ReraNumber = req.ReraNumber
	}
	if req.FireNocNumber != "" {
		project.FireNocNumber = req.FireNocNumber
	}

	if req.CityID != nil {
		var city models.City
		if err := pc.DB.First(&city, *req.CityID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("city not found"))
			return
		}
		project.CityID = &city.ID
	}

	if req.SupervisorID != nil {
		var supervisor models.User
		if err := pc.DB.First(&supervisor, *req.SupervisorID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("supervisor not found"))
			return
		}
		project.SupervisorID = &supervisor.ID
	} else {
		project.SupervisorID = nil
	}

	if req.Status != "" {
		if !validProjectStatus(req.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid project status: "+req.Status))
			return
		}
		project.Status = req.Status
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project updated", project)
}

// UpdateProjectStatus changes only the status (and optionally the stamped
// labour count), the quick path used by the live view.
func (pc *ProjectController) UpdateProjectStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status      string `json:"status"`
		LabourCount *int   `json:"labour_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var project models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	if req.Status != "" {
		if !validProjectStatus(req.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid project status: "+req.Status))
			return
		}
		project.Status = req.Status
	}
	if req.LabourCount != nil && *req.LabourCount >= 0 {
		project.LabourCount = *req.LabourCount
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project updated", project)
}

// DeleteProject cascades over attendance, labour, BOQ and site updates in
// one transaction before removing the project itself.
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := pc.Projects.DeleteProjectCascade(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Project %d and all related data deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Project and all related data deleted successfully", gin.H{
		"id": id,
	})
}

// GetSupervisors lists supervisor users with their running-project counts.
func (pc *ProjectController) GetSupervisors(c *gin.Context) {
	var supervisors []models.User
	if err := pc.DB.Where("role = ?", models.RoleSupervisor).Find(&supervisors).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for i := range supervisors {
		if err := pc.DB.Model(&models.Project{}).
			Where("supervisor_id = ? AND status = ?", supervisors[i].ID, models.ProjectStatusRunning).
			Count(&supervisors[i].ProjectCount).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "List of supervisors", supervisors)
}

// PostSiteUpdate lets an admin publish a progress note, optionally with a
// photo, onto a project's update feed.
func (pc *ProjectController) PostSiteUpdate(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.PostForm("project_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid project_id"))
		return
	}
	content := c.PostForm("content")
	if content == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("content is required"))
		return
	}

	var project models.Project
	if err := pc.DB.First(&project, uint(projectID)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	update := models.SiteUpdate{
		ProjectID:  project.ID,
		Content:    content,
		UpdateTime: time.Now(),
	}
	if file, err := c.FormFile("file"); err == nil {
		url, err := utils.SaveUploadedFile(c, file)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		update.PhotoURL1 = url
	}

	if err := pc.DB.Create(&update).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Update saved successfully", update)
}

func validProjectStatus(s string) bool {
	switch s {
	case models.ProjectStatusRunning, models.ProjectStatusOnHold,
		models.ProjectStatusCompleted, models.ProjectStatusDelayed:
		return true
	}
	return false
}

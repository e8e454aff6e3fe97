package controllers

import (
	"errors"
	"net/http"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PublicController struct {
	DB *gorm.DB
}

func NewPublicController(db *gorm.DB) *PublicController {
	return &PublicController{DB: db}
}

// GetProjectDetails serves the unauthenticated client view: safe project
// fields plus the BOQ table, nothing else.
func (pc *PublicController) GetProjectDetails(c *gin.Context) {
	var project models.Project
	if err := pc.DB.First(&project, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	var boq []models.BillOfQuantity
	if err := pc.DB.Where("project_id = ?", project.ID).Find(&boq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Project details", gin.H{
		"project": gin.H{
			"name":        project.Name,
			"client_name": project.ClientName,
			"location":    project.Location,
			"start_date":  project.StartDate,
			"status":      project.Status,
		},
		"boq": boq,
	})
}

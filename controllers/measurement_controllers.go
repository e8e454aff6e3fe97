package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MeasurementController struct {
	DB *gorm.DB
}

func NewMeasurementController(db *gorm.DB) *MeasurementController {
	return &MeasurementController{DB: db}
}

// GetProjectBOQ lists the budgeted scope items of a project.
func (mc *MeasurementController) GetProjectBOQ(c *gin.Context) {
	var items []models.BillOfQuantity
	if err := mc.DB.Where("project_id = ?", c.Param("project_id")).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project BOQ", items)
}

// RecordMeasurement logs a daily measurement against a BOQ item and adds the
// computed quantity to its completed scope. SFT items use length x width,
// RFT (and anything unrecognized) use length alone.
func (mc *MeasurementController) RecordMeasurement(c *gin.Context) {
	var req struct {
		BoqID          uint    `json:"boq_id" binding:"required"`
		Length         float64 `json:"length" binding:"required"`
		Width          float64 `json:"width"`
		Remarks        string  `json:"remarks"`
		SupervisorName string  `json:"supervisor_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var boq models.BillOfQuantity
	if err := mc.DB.First(&boq, req.BoqID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("BOQ item not found"))
		return
	}

	var quantity float64
	switch strings.ToUpper(boq.Unit) {
	case "SFT":
		quantity = req.Length * req.Width
	default: // RFT and anything else count running length
		quantity = req.Length
	}

	measurement := models.DailyMeasurement{
		BoqID:          boq.ID,
		Date:           utils.Today(),
		Length:         req.Length,
		Height:         req.Width,
		Quantity:       quantity,
		Remarks:        req.Remarks,
		SupervisorName: req.SupervisorName,
	}
	if err := mc.DB.Create(&measurement).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	boq.CompletedScope += quantity
	if err := mc.DB.Save(&boq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK,
		fmt.Sprintf("Measurement recorded: %g %s", quantity, boq.Unit), measurement)
}

// AddBOQItem creates a budgeted scope item on a project.
func (mc *MeasurementController) AddBOQItem(c *gin.Context) {
	var req struct {
		ProjectID  uint    `json:"project_id" binding:"required"`
		ItemName   string  `json:"item_name" binding:"required"`
		Unit       string  `json:"unit" binding:"required"`
		TotalScope float64 `json:"total_scope" binding:"required"`
		Rate       float64 `json:"rate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var project models.Project
	if err := mc.DB.First(&project, req.ProjectID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("project not found"))
		return
	}

	boq := models.BillOfQuantity{
		ProjectID:  project.ID,
		ItemName:   req.ItemName,
		Unit:       req.Unit,
		TotalScope: req.TotalScope,
		Rate:       req.Rate,
		GstRate:    18.0,
	}
	if err := mc.DB.Create(&boq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "BOQ item added", boq)
}

// UpdateBOQItem patches the editable fields of a BOQ item.
func (mc *MeasurementController) UpdateBOQItem(c *gin.Context) {
	var req struct {
		ItemName   *string  `json:"item_name"`
		Unit       *string  `json:"unit"`
		TotalScope *float64 `json:"total_scope"`
		Rate       *float64 `json:"rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var boq models.BillOfQuantity
	if err := mc.DB.First(&boq, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("BOQ item not found"))
		return
	}

	if req.ItemName != nil {
		boq.ItemName = *req.ItemName
	}
	if req.Unit != nil {
		boq.Unit = *req.Unit
	}
	if req.TotalScope != nil {
		boq.TotalScope = *req.TotalScope
	}
	if req.Rate != nil {
		boq.Rate = *req.Rate
	}

	if err := mc.DB.Save(&boq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "BOQ item updated", boq)
}

// DeleteBOQItem removes a BOQ item.
func (mc *MeasurementController) DeleteBOQItem(c *gin.Context) {
	var boq models.BillOfQuantity
	if err := mc.DB.First(&boq, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("BOQ item not found"))
		return
	}
	if err := mc.DB.Delete(&boq).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "BOQ item deleted successfully", gin.H{
		"id": boq.ID,
	})
}

package controllers

import (
	"net/http"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CityController struct {
	DB *gorm.DB
}

func NewCityController(db *gorm.DB) *CityController {
	return &CityController{DB: db}
}

// CreateCity registers a new operating city. State is mandatory.
func (cc *CityController) CreateCity(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	city := models.City{
		Name:     req.Name,
		State:    req.State,
		IsActive: true,
	}
	if err := cc.DB.Create(&city).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New city added: %s, %s", city.Name, city.State)
	utils.RespondJSON(c, http.StatusCreated, "City added", city)
}

// GetAllCities feeds the create-project dropdown.
func (cc *CityController) GetAllCities(c *gin.Context) {
	var cities []models.City
	if err := cc.DB.Find(&cities).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of cities", cities)
}

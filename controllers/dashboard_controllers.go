package controllers

import (
	"net/http"

	"github.com/engineeringdigest/buildtrack-app/services"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	Dashboard *services.DashboardService
	Projects  *services.ProjectService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		Dashboard: services.NewDashboardService(db),
		Projects:  services.NewProjectService(db),
	}
}

// GetDashboard assembles the whole dashboard in one call: cards, city table,
// project list, site update feed and alerts.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	globalStats, err := dc.Dashboard.GlobalStats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	cityStats, err := dc.Dashboard.CityStats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	projects, err := dc.Projects.GetAllProjects()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	updates, err := dc.Dashboard.RecentUpdates()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	alerts, err := dc.Dashboard.Alerts()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard data", gin.H{
		"global_stats": globalStats,
		"city_stats":   cityStats,
		"projects":     projects,
		"site_updates": updates,
		"alerts":       alerts,
	})
}

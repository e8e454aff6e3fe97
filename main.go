package main

import (
	"log"
	"os"

	"github.com/engineeringdigest/buildtrack-app/config"
	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/router"
	"github.com/engineeringdigest/buildtrack-app/services"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedDefaultAdmin(db)

	// Keep the persisted project headcounts honest between supervisor reports.
	projectService := services.NewProjectService(db)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := projectService.RefreshLabourCounts(); err != nil {
			utils.ErrorLogger.Printf("Labour count sync failed: %v", err)
		}
	}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to schedule labour count sync: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := router.SetupRouter(db)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.Project{},
		&models.Labour{},
		&models.Attendance{},
		&models.SiteUpdate{},
		&models.BillOfQuantity{},
		&models.DailyMeasurement{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedDefaultAdmin creates the bootstrap admin account on a fresh database.
func seedDefaultAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to check users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to seed default admin: %v", err)
		return
	}
	utils.InfoLogger.Println("Default admin user created: username='admin'")
}

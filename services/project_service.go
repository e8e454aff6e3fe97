package services

import (
	"errors"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"gorm.io/gorm"
)

// ProjectService owns project lifecycle concerns that span more than one
// entity: listing with derived headcounts, cascade deletion, headcount sync.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// GetAllProjects lists every project with city and supervisor loaded and the
// labour count re-derived from active workers.
func (s *ProjectService) GetAllProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Preload("City").Preload("Supervisor").Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	for i := range projects {
		count, err := s.activeLabourCount(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].LabourCount = int(count)
	}
	return projects, nil
}

// GetProject loads one project with its relations.
func (s *ProjectService) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("City").Preload("Supervisor").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Project", ID: id}
		}
		return nil, err
	}
	count, err := s.activeLabourCount(project.ID)
	if err != nil {
		return nil, err
	}
	project.LabourCount = int(count)
	return &project, nil
}

func (s *ProjectService) activeLabourCount(projectID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Labour{}).
		Where("project_id = ? AND is_active = ?", projectID, true).
		Count(&count).Error
	return count, err
}

// DeleteProjectCascade removes a project and everything hanging off it in a
// single transaction: attendance, labour (active and inactive), BOQ items and
// their measurements, site updates, then the project row.
func (s *ProjectService) DeleteProjectCascade(id uint) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Project", ID: id}
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Labour{}).Error; err != nil {
			return err
		}
		if err := tx.Where("boq_id IN (?)",
			tx.Model(&models.BillOfQuantity{}).Select("id").Where("project_id = ?", id),
		).Delete(&models.DailyMeasurement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.BillOfQuantity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.SiteUpdate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// RefreshLabourCounts re-syncs every project's persisted labour_count column
// with the live active-worker count. Run nightly; supervisor reports can
// stamp arbitrary numbers between runs.
func (s *ProjectService) RefreshLabourCounts() error {
	var projects []models.Project
	if err := s.db.Find(&projects).Error; err != nil {
		return err
	}
	for _, p := range projects {
		count, err := s.activeLabourCount(p.ID)
		if err != nil {
			return err
		}
		if int(count) == p.LabourCount {
			continue
		}
		if err := s.db.Model(&models.Project{}).Where("id = ?", p.ID).
			Update("labour_count", count).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Labour count for project %d synced: %d -> %d", p.ID, p.LabourCount, count)
	}
	return nil
}

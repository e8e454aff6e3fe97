package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/engineeringdigest/buildtrack-app/models"
	"github.com/engineeringdigest/buildtrack-app/utils"
	"gorm.io/gorm"
)

// WorkloadOf maps an attendance status to its fraction of a working day.
// Unknown statuses (including ABSENT) carry no workload.
func WorkloadOf(status string) float64 {
	switch strings.ToUpper(status) {
	case models.AttendanceStatusPresent:
		return 1.0
	case models.AttendanceStatusHalfDay:
		return 0.5
	}
	return 0.0
}

// AttendanceEntry is one record of a bulk attendance submission.
type AttendanceEntry struct {
	LabourID  uint   `json:"labour_id" binding:"required"`
	ProjectID uint   `json:"project_id" binding:"required"`
	Date      string `json:"date"` // optional, defaults to today
	Status    string `json:"status" binding:"required"`
}

// AttendanceResult is the per-record outcome of a submission.
type AttendanceResult struct {
	LabourID  uint   `json:"labour_id"`
	ProjectID uint   `json:"project_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Accepted  bool   `json:"accepted"`
	Error     string `json:"error,omitempty"`
}

// AttendanceService is the workload conflict ledger. It reconciles attendance
// submissions by worker name, not worker row: duplicate Labour rows sharing a
// name across projects count against the same one-day budget.
type AttendanceService struct {
	db *gorm.DB

	// Serializes the check-then-write sequence per (lowercased name, date) so
	// two concurrent submissions for the same person cannot both pass the
	// conflict check.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *AttendanceService) lockFor(name, date string) *sync.Mutex {
	key := strings.ToLower(name) + "|" + date
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

// findSameNameOnDate returns every attendance record, across all projects, for
// any worker whose name matches case-insensitively on the given date.
func (s *AttendanceService) findSameNameOnDate(name, date string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := s.db.
		Joins("JOIN labours ON labours.id = attendances.labour_id").
		Where("LOWER(labours.name) = LOWER(?) AND attendances.date = ?", name, date).
		Find(&records).Error
	return records, err
}

// SubmitAttendance processes a batch of attendance records sequentially. Each
// record is independently accepted or rejected; a rejection never blocks the
// rest of the batch. Only an infrastructure error aborts the run. Writes are
// visible to later records of the same batch since every record re-queries
// the store.
func (s *AttendanceService) SubmitAttendance(caller models.Identity, entries []AttendanceEntry) ([]AttendanceResult, error) {
	results := make([]AttendanceResult, 0, len(entries))

	for _, entry := range entries {
		date, err := utils.ParseDate(entry.Date)
		if err != nil {
			results = append(results, rejected(entry, entry.Date, err))
			continue
		}

		res, err := s.submitOne(entry, date)
		if err != nil {
			// Infrastructure failure: fail fast, keep what is already persisted.
			return results, err
		}
		if res.Accepted {
			utils.InfoLogger.Printf("Attendance %s for labour %d on project %d (%s) by %s",
				res.Status, res.LabourID, res.ProjectID, res.Date, caller.Username)
		} else {
			utils.InfoLogger.Printf("Attendance rejected for labour %d on project %d (%s): %s",
				res.LabourID, res.ProjectID, res.Date, res.Error)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *AttendanceService) submitOne(entry AttendanceEntry, date string) (AttendanceResult, error) {
	var worker models.Labour
	if err := s.db.First(&worker, entry.LabourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rejected(entry, date, &NotFoundError{Resource: "Labour", ID: entry.LabourID}), nil
		}
		return AttendanceResult{}, err
	}

	lock := s.lockFor(worker.Name, date)
	lock.Lock()
	defer lock.Unlock()

	newLoad := WorkloadOf(entry.Status)

	existing, err := s.findSameNameOnDate(worker.Name, date)
	if err != nil {
		return AttendanceResult{}, err
	}

	var sameProject *models.Attendance
	otherLoad := 0.0
	for i := range existing {
		if existing[i].ProjectID == entry.ProjectID {
			if sameProject == nil {
				sameProject = &existing[i]
			}
			continue
		}
		otherLoad += WorkloadOf(existing[i].Status)
	}

	// Zero-load submissions (marking ABSENT) always pass: declaring non-work
	// is never a conflict, even for a worker fully booked elsewhere.
	if newLoad > 0 && otherLoad+newLoad > 1.0 {
		return rejected(entry, date, &ConflictError{Name: worker.Name, OtherLoad: otherLoad}), nil
	}

	if sameProject != nil {
		sameProject.Status = entry.Status
		if err := s.db.Save(sameProject).Error; err != nil {
			return AttendanceResult{}, err
		}
	} else {
		var count int64
		if err := s.db.Model(&models.Project{}).Where("id = ?", entry.ProjectID).Count(&count).Error; err != nil {
			return AttendanceResult{}, err
		}
		if count == 0 {
			return rejected(entry, date, &NotFoundError{Resource: "Project", ID: entry.ProjectID}), nil
		}
		record := models.Attendance{
			LabourID:  worker.ID,
			ProjectID: entry.ProjectID,
			Date:      date,
			Status:    entry.Status,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return AttendanceResult{}, err
		}
	}

	return AttendanceResult{
		LabourID:  entry.LabourID,
		ProjectID: entry.ProjectID,
		Date:      date,
		Status:    entry.Status,
		Accepted:  true,
	}, nil
}

func rejected(entry AttendanceEntry, date string, err error) AttendanceResult {
	return AttendanceResult{
		LabourID:  entry.LabourID,
		ProjectID: entry.ProjectID,
		Date:      date,
		Status:    entry.Status,
		Accepted:  false,
		Error:     err.Error(),
	}
}

// GetProjectAttendance lists a project's attendance sheet for one date.
func (s *AttendanceService) GetProjectAttendance(projectID uint, date string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := s.db.Preload("Labour").
		Where("project_id = ? AND date = ?", projectID, date).
		Find(&records).Error
	return records, err
}

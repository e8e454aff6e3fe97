package models

// Attendance statuses with workload significance. The column is free text;
// anything else resolves to zero workload.
const (
	AttendanceStatusPresent = "PRESENT"
	AttendanceStatusHalfDay = "HALF_DAY"
	AttendanceStatusAbsent  = "ABSENT"
)

// Attendance holds one worker's status on one project for one date. There is
// at most one row per (labour, project, date); the ledger enforces that with
// find-or-create, there is no unique index.
type Attendance struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	LabourID  uint     `gorm:"not null;index" json:"labour_id"`
	Labour    *Labour  `gorm:"foreignKey:LabourID" json:"labour,omitempty"`
	ProjectID uint     `gorm:"not null;index" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Date      string   `gorm:"type:varchar(10);not null;index" json:"date"` // "2006-01-02"
	Status    string   `gorm:"type:varchar(50);not null" json:"status"`
}

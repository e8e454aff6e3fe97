package models

import "time"

// Labour is one worker assignment on one project. The same person working on
// two projects is two Labour rows sharing a name; the attendance ledger joins
// them by case-insensitive name, never by a person id.
type Labour struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Type      string    `gorm:"type:varchar(100)" json:"type"` // "Mason", "Helper", "Carpenter"
	DailyWage float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"daily_wage"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type SiteUpdate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Content    string    `gorm:"type:text" json:"content"`
	PhotoURL1  string    `gorm:"column:photo_url_1;type:varchar(512)" json:"photo_url_1"`
	PhotoURL2  string    `gorm:"column:photo_url_2;type:varchar(512)" json:"photo_url_2"`
	UpdateTime time.Time `gorm:"not null;index" json:"update_time"`
}

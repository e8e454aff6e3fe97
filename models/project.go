package models

import "time"

// Project status values. Stored as plain strings so unknown values coming
// from old rows never break reads; reporting filters empty statuses out.
const (
	ProjectStatusRunning   = "RUNNING"
	ProjectStatusOnHold    = "ON_HOLD"
	ProjectStatusCompleted = "COMPLETED"
	ProjectStatusDelayed   = "DELAYED"
)

type Project struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	ClientName string `gorm:"type:varchar(255);not null" json:"client_name"`

	// Address breakdown
	Location string `gorm:"type:varchar(255)" json:"location"`
	PlotNo   string `gorm:"type:varchar(100)" json:"plot_no"`
	Colony   string `gorm:"type:varchar(255)" json:"colony"`
	Pincode  string `gorm:"type:varchar(20)" json:"pincode"`
	District string `gorm:"type:varchar(100)" json:"district"`
	State    string `gorm:"type:varchar(100)" json:"state"`

	// Specifications
	ProjectType string   `gorm:"type:varchar(100)" json:"project_type"`
	SquareFeet  *float64 `json:"square_feet,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`

	// Compliance & docs
	ReraNumber           string `gorm:"type:varchar(100)" json:"rera_number"`
	FireNocNumber        string `gorm:"type:varchar(100)" json:"fire_noc_number"`
	MunicipalApprovalURL string `gorm:"type:varchar(512)" json:"municipal_approval_url"`
	LabourLicenseURL     string `gorm:"type:varchar(512)" json:"labour_license_url"`

	Status    string `gorm:"type:varchar(20);not null;default:'RUNNING'" json:"status"`
	StartDate string `gorm:"type:varchar(10)" json:"start_date"` // "2006-01-02"

	CityID *uint `gorm:"index" json:"city_id,omitempty"`
	City   *City `gorm:"foreignKey:CityID" json:"city,omitempty"`

	SupervisorID *uint `gorm:"index" json:"supervisor_id,omitempty"`
	Supervisor   *User `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`

	// Derived from active labour; persisted so supervisor reports can stamp it,
	// re-synced on dashboard reads and by the nightly job.
	LabourCount int `gorm:"not null;default:0" json:"labour_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

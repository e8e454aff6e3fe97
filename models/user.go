package models

import "time"

// Roles known to the app. Stored uppercase on the user row.
const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(255);unique;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(50);not null" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Filled in by the supervisor listing, not persisted.
	ProjectCount int64 `gorm:"-" json:"project_count"`
}

// Identity is the authenticated caller, extracted once from the JWT by the
// auth middleware and passed explicitly into every service call that needs it.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleStudent      UserRole = "student"
	RoleEducator     UserRole = "educator"
	RoleResearcher   UserRole = "researcher"
	RoleDeveloper    UserRole = "developer"
	RoleDesigner     UserRole = "designer"
	RoleWriter       UserRole = "writer"
	RoleMarketer     UserRole = "marketer"
	RoleEntrepreneur UserRole = "entrepreneur"
	RoleOther        UserRole = "other"
)

// IsValid reports whether the role is one of the known roles. The empty
// string is also valid: Google sign-ups start without a role until the user
// picks one in onboarding.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleEducator, RoleResearcher, RoleDeveloper,
		RoleDesigner, RoleWriter, RoleMarketer, RoleEntrepreneur, RoleOther, "":
		return true
	}
	return false
}

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	// Empty for accounts created through Google sign-in.
	PasswordHash string `json:"-" gorm:"size:255"`

	FirstName string   `json:"first_name" gorm:"size:150"`
	LastName  string   `json:"last_name" gorm:"size:150"`
	Role      UserRole `json:"role" gorm:"size:20"`

	// Free-form per-user settings (google_id, profile_picture, auth_provider, ...).
	Preferences datatypes.JSONMap `json:"preferences" gorm:"type:jsonb"`

	IsActive    bool `json:"is_active" gorm:"default:true"`
	IsStaff     bool `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"default:false"`

	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Prompts []Prompt `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name, trimming when either is empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

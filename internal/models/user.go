package models

import (
	"gorm.io/gorm"
)

// Role marks which side of the marketplace an account belongs to.
// An account holds exactly one role at a time; the matching profile
// record is kept in sync by the profile service.
type Role string

const (
	RoleUnassigned Role = ""
	RoleClient     Role = "client"
	RoleArtisan    Role = "artisan"
)

// Valid reports whether the role is one a user may register with.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleArtisan
}

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         Role   `gorm:"type:varchar(16);default:''" json:"role"`
	IsActive     bool   `gorm:"default:false" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"-"`
	TokenVersion int    `gorm:"default:1" json:"-"`
}

// IsClient and IsArtisan exist for the JSON/handler boundary; internal
// code switches on Role directly.
func (u *User) IsClient() bool  { return u.Role == RoleClient }
func (u *User) IsArtisan() bool { return u.Role == RoleArtisan }

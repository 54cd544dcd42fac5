package models

import "time"

// UserRole controls access to the admin surface.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents the user model in the database
type User struct {
	Base
	Email               string           `gorm:"uniqueIndex;not null" json:"email"`
	Password            string           `gorm:"not null" json:"-"`
	FirstName           string           `json:"first_name"`
	LastName            string           `json:"last_name"`
	Role                UserRole         `gorm:"not null;default:'user'" json:"role"`
	IsActive            bool             `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string           `gorm:"size:64" json:"-"`
	FailedLoginAttempts int              `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time       `json:"-"`
	LastLoginAt         *time.Time       `json:"last_login_at,omitempty"`
	EmissionRecords     []EmissionRecord `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

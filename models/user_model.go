package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Registration only ever produces a student or a teacher;
// admin accounts come from the startup seeding path.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null" json:"role"`
	Avatar   string    `gorm:"size:255;default:''" json:"avatar"`
	Phone    *string   `gorm:"size:50" json:"phone,omitempty"`
	IsActive bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

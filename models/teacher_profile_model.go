package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TeacherProfile is a teacher's public listing. The unique index on
// UserID means two concurrent creations for the same user cannot both
// land, even if they both pass the handler's existence pre-check.
type TeacherProfile struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Subjects     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"subjects"`
	Bio          string                      `gorm:"type:text" json:"bio"`
	PricePerHour float64                     `gorm:"type:numeric(10,2)" json:"price_per_hour"`
	AvgRating    float32                     `gorm:"default:0" json:"avg_rating"`

	User    User     `gorm:"foreignkey:UserID" json:"user"`
	Ratings []Rating `gorm:"foreignkey:TeacherProfileID" json:"ratings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating rows are append-only. Keeping them in their own table makes a
// rating submission a single INSERT, so concurrent raters never
// overwrite each other the way a whole-document rewrite would.
type Rating struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_profile_id"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	Rating           int       `gorm:"not null" json:"rating"`
	Comment          string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

package course

import (
	"time"

	"lms/models"

	"gorm.io/gorm"
)

const (
	EnrollmentEnrolled  = "ENROLLED"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
)

// Enrollment tracks a student's enrollment in a course with progress.
// One row per (user, course); unenroll flips IsActive instead of deleting
// so re-enrollment reactivates the same row.
type Enrollment struct {
	gorm.Model
	UserID      uint        `json:"user_id" gorm:"index:idx_enrollment_user_course,unique;not null"`
	CourseID    uint        `json:"course_id" gorm:"index:idx_enrollment_user_course,unique;not null"`
	Status      string      `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED, DROPPED
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	Progress    float64     `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	EnrolledAt  time.Time   `json:"enrolled_at"`
	CompletedAt *time.Time  `json:"completed_at"`
	IsDeleted   bool        `gorm:"default:false"`
	User        models.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course      Course      `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

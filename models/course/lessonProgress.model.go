package course

import (
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// LessonProgress tracks one student's progress on one lesson.
// Aggregated upward into Enrollment.Progress.
type LessonProgress struct {
	gorm.Model
	UserID               uint        `json:"user_id" gorm:"index:idx_progress_user_lesson,unique;not null"`
	LessonID             uint        `json:"lesson_id" gorm:"index:idx_progress_user_lesson,unique;not null"`
	CompletionPercentage float64     `json:"completion_percentage" gorm:"default:0"` // 0-100
	TimeSpentMinutes     int         `json:"time_spent_minutes" gorm:"default:0"`    // accumulates across updates
	IsCompleted          bool        `json:"is_completed" gorm:"default:false"`
	StartedAt            time.Time   `json:"started_at"`
	CompletedAt          *time.Time  `json:"completed_at"`
	IsDeleted            bool        `gorm:"default:false"`
	User                 models.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Lesson               Lesson      `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

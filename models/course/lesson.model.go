package course

import "gorm.io/gorm"

const (
	LessonVideo      = "VIDEO"
	LessonText       = "TEXT"
	LessonQuiz       = "QUIZ"
	LessonAssignment = "ASSIGNMENT"
	LessonLive       = "LIVE"
)

// Lesson is the smallest content unit, ordered within a module
type Lesson struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description" gorm:"type:text"`
	LessonType      string `json:"lesson_type" gorm:"default:'VIDEO'"`
	Content         string `json:"content" gorm:"type:text"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"` // unique among live lessons of a module, enforced in controllers
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsFreePreview   bool   `json:"is_free_preview" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}

package course

import (
	"lms/models"

	"gorm.io/gorm"
)

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelExpert       = "EXPERT"
)

// Category groups courses in the catalog, managed by admins
type Category struct {
	gorm.Model
	Title       string `json:"title" gorm:"unique;not null"`
	IconSrc     string `json:"icon_src" gorm:"default:''"`
	Description string `json:"description" gorm:"type:text"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Course represents a learning course owned by one teacher
type Course struct {
	gorm.Model
	Title              string      `json:"title"`
	Slug               string      `json:"slug" gorm:"uniqueIndex;size:250"`
	TeacherID          uint        `json:"teacher_id" gorm:"index;not null"`
	Description        string      `json:"description" gorm:"type:text"`
	Language           string      `json:"language" gorm:"default:'en'"` // en, es, fr, de, ur, hi, ar
	Price              float64     `json:"price" gorm:"default:0"`
	Currency           string      `json:"currency" gorm:"default:'USD'"` // USD, EUR, GBP, INR, PKR
	Level              string      `json:"level" gorm:"default:'BEGINNER'"`
	Category           string      `json:"category" gorm:"default:''"`
	Tags               string      `json:"tags" gorm:"size:500"` // comma separated
	ThumbnailURL       string      `json:"thumbnail_url"`
	DurationHours      int         `json:"duration_hours" gorm:"default:0"`
	MaxStudents        int         `json:"max_students" gorm:"default:0"` // 0 = unlimited
	Prerequisites      string      `json:"prerequisites" gorm:"type:text"`
	LearningObjectives string      `json:"learning_objectives" gorm:"type:text"`
	IsFree             bool        `json:"is_free" gorm:"default:false"`
	IsPublished        bool        `json:"is_published" gorm:"default:false"`
	EnrolledCount      int         `json:"enrolled_count" gorm:"default:0"` // cached, reconciled nightly
	AverageRating      float64     `json:"average_rating" gorm:"default:0"` // cached, reconciled nightly
	IsDeleted          bool        `gorm:"default:false"`
	Teacher            models.User `json:"-" gorm:"foreignKey:TeacherID"`
}

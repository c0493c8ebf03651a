package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// Review is one student's rating of a course, gated on active enrollment
type Review struct {
	gorm.Model
	UserID      uint        `json:"user_id" gorm:"index:idx_review_user_course,unique;not null"`
	CourseID    uint        `json:"course_id" gorm:"index:idx_review_user_course,unique;not null"`
	Rating      int         `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	ReviewText  string      `json:"review_text" gorm:"type:text;default:''"`
	IsPublished bool        `json:"is_published" gorm:"default:true"`
	IsDeleted   bool        `gorm:"default:false"`
	User        models.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course      Course      `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

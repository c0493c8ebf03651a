package models

import "gorm.io/gorm"

type SupportTicket struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  *uint  `json:"course_id" gorm:"index"` // optional: ticket about a specific course
	Subject   string `json:"subject"`
	Message   string `json:"message" gorm:"type:text"`
	Status    string `json:"status" gorm:"default:'OPEN'"`      // OPEN, IN_PROGRESS, RESOLVED, CLOSED
	Priority  string `json:"priority" gorm:"default:'MEDIUM'"`  // LOW, MEDIUM, HIGH
	Category  string `json:"category" gorm:"default:'GENERAL'"` // GENERAL, CONTENT, BILLING, TECHNICAL
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}

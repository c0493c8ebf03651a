package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name            string    `json:"name" gorm:"default:''"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Mobile          string    `json:"mobile" gorm:"default:''"`
	Role            string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password        string    `json:"-" gorm:"not null"`
	AvatarURL       string    `json:"avatar_url" gorm:"default:''"`
	Country         string    `json:"country" gorm:"default:''"`
	Language        string    `json:"language" gorm:"default:'en'"`
	Timezone        string    `json:"timezone" gorm:"default:'UTC'"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	LastLogin       time.Time `json:"last_login" gorm:"default:NULL"`
	IsBlocked       bool      `json:"is_blocked" gorm:"default:false"`
	IsDeleted       bool      `json:"-" gorm:"default:false"`
}

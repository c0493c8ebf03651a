package utils

import (
	"fmt"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateCourseSlug derives a unique slug from the title, appending -1, -2,
// ... while the candidate collides with another course. excludeID skips the
// course being retitled so an identical slug is kept, 0 on create.
func GenerateCourseSlug(db *gorm.DB, title string, excludeID uint) string {
	base := slug.Make(title)
	candidate := base
	counter := 1
	for {
		var count int64
		db.Model(&courseModels.Course{}).Where("slug = ? AND id != ?", candidate, excludeID).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

// NewEmailVerificationToken creates a 24h verification token for the user
func NewEmailVerificationToken(db *gorm.DB, userID uint) (*models.EmailVerificationToken, error) {
	// One live token per user
	db.Where("user_id = ?", userID).Delete(&models.EmailVerificationToken{})

	token := models.EmailVerificationToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// NewPasswordResetToken creates a 1h reset token for the user
func NewPasswordResetToken(db *gorm.DB, userID uint) (*models.PasswordResetToken, error) {
	token := models.PasswordResetToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// NewCertificateNumber builds a unique human-readable certificate number
func NewCertificateNumber(courseID, userID uint) string {
	return fmt.Sprintf("LMS-%d-%d-%s", courseID, userID, uuid.NewString()[:8])
}

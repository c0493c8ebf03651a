package utils

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeScheduler sets up the background job scheduler
func InitializeScheduler() {
	log.Println("[SCHEDULER] Initializing background jobs...")

	c := cron.New()

	// Nightly at 2 AM: reconcile cached course aggregates from source rows
	c.AddFunc("0 2 * * *", func() {
		log.Println("[SCHEDULER] Running nightly aggregate reconciliation...")
		ReconcileCourseAggregates()
	})

	// Hourly: purge expired verification and reset tokens
	c.AddFunc("0 * * * *", func() {
		PurgeExpiredTokens()
	})

	// Monday at 8 AM: weekly enrollment digest for teachers
	c.AddFunc("0 8 * * 1", func() {
		log.Println("[SCHEDULER] Running weekly teacher digest...")
		SendTeacherDigests()
	})

	c.Start()
	log.Println("[SCHEDULER] Background jobs started")
}

// ReconcileCourseAggregates recounts EnrolledCount and AverageRating for every
// live course. Covers any drift from the synchronous updates.
func ReconcileCourseAggregates() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching courses: %v", err)
		return
	}

	for _, course := range courses {
		var enrolled int64
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_active = ? AND is_deleted = ?", course.ID, true, false).
			Count(&enrolled)

		var avg float64
		db.Model(&courseModels.Review{}).
			Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).
			Select("COALESCE(AVG(rating), 0)").Scan(&avg)

		if int(enrolled) != course.EnrolledCount || avg != course.AverageRating {
			db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
				Updates(map[string]interface{}{"enrolled_count": enrolled, "average_rating": avg})
		}
	}

	log.Printf("[SCHEDULER] Reconciled aggregates for %d courses", len(courses))
}

// PurgeExpiredTokens hard-deletes expired email verification and password reset tokens
func PurgeExpiredTokens() {
	db := database.Database.Db
	cutoff := time.Now()

	db.Unscoped().Where("expires_at < ?", cutoff).Delete(&models.EmailVerificationToken{})
	db.Unscoped().Where("expires_at < ? OR is_used = ?", cutoff, true).Delete(&models.PasswordResetToken{})
}

// SendTeacherDigests emails each teacher the previous calendar week's new
// enrollments across their courses.
func SendTeacherDigests() {
	db := database.Database.Db

	lastWeek := now.With(time.Now().AddDate(0, 0, -7))
	weekStart := lastWeek.BeginningOfWeek()
	weekEnd := lastWeek.EndOfWeek()

	var teachers []models.User
	if err := db.Where("role = ? AND is_deleted = ?", models.RoleTeacher, false).Find(&teachers).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching teachers: %v", err)
		return
	}

	for _, teacher := range teachers {
		var courses []courseModels.Course
		db.Where("teacher_id = ? AND is_deleted = ?", teacher.ID, false).Find(&courses)

		var lines []string
		for _, course := range courses {
			var count int64
			db.Model(&courseModels.Enrollment{}).
				Where("course_id = ? AND is_deleted = ?", course.ID, false).
				Where("enrolled_at BETWEEN ? AND ?", weekStart, weekEnd).
				Count(&count)
			if count > 0 {
				lines = append(lines, fmt.Sprintf("%s: %d new enrollments", course.Title, count))
			}
		}

		if len(lines) == 0 {
			continue
		}
		if err := SendWeeklyTeacherDigest(teacher.Email, teacher.Name, lines); err != nil {
			log.Printf("[SCHEDULER] Error sending digest to %s: %v", teacher.Email, err)
		}
	}
}

package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// UpdateLessonProgress records the authenticated student's progress on a
// lesson and re-derives the course-level enrollment progress.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lesson.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Caller must hold an active enrollment in the lesson's course
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_active = ? AND is_deleted = ?", userID, module.CourseID, true, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to access this lesson!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		CompletionPercentage *float64 `json:"completion_percentage"`
		TimeSpentMinutes     int      `json:"time_spent_minutes"`
		IsCompleted          bool     `json:"is_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Upsert the progress row
	var progress courseModels.LessonProgress
	err := database.Database.Db.
		Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lesson.ID, false).
		First(&progress).Error
	if err != nil {
		progress = courseModels.LessonProgress{
			UserID:    userID,
			LessonID:  lesson.ID,
			StartedAt: time.Now(),
		}
	}

	if reqData.CompletionPercentage != nil {
		progress.CompletionPercentage = *reqData.CompletionPercentage
	}
	progress.TimeSpentMinutes += reqData.TimeSpentMinutes

	// Completion latches: once done, stays done
	if reqData.IsCompleted && !progress.IsCompleted {
		progress.IsCompleted = true
		progress.CompletionPercentage = 100
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := database.Database.Db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	updateEnrollmentProgress(&user, &enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", fiber.Map{
		"lesson_progress": progress,
		"enrollment":      enrollment,
	})
}

// GetCourseProgress returns the per-lesson breakdown plus the enrollment summary
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	lessons := courseLessons(course.ID)

	type lessonProgressView struct {
		LessonID             uint    `json:"lesson_id"`
		Title                string  `json:"title"`
		CompletionPercentage float64 `json:"completion_percentage"`
		TimeSpentMinutes     int     `json:"time_spent_minutes"`
		IsCompleted          bool    `json:"is_completed"`
	}

	result := make([]lessonProgressView, len(lessons))
	for i, lesson := range lessons {
		result[i] = lessonProgressView{LessonID: lesson.ID, Title: lesson.Title}

		var progress courseModels.LessonProgress
		if err := database.Database.Db.
			Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lesson.ID, false).
			First(&progress).Error; err == nil {
			result[i].CompletionPercentage = progress.CompletionPercentage
			result[i].TimeSpentMinutes = progress.TimeSpentMinutes
			result[i].IsCompleted = progress.IsCompleted
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"lessons":    result,
	})
}

// courseLessons returns the live published lessons of a course
func courseLessons(courseID uint) []courseModels.Lesson {
	var lessons []courseModels.Lesson
	database.Database.Db.
		Where("module_id IN (?) AND is_deleted = ? AND is_published = ?",
			database.Database.Db.Model(&courseModels.Module{}).Select("id").
				Where("course_id = ? AND is_deleted = ?", courseID, false),
			false, true).
		Order("module_id asc, order_index asc").
		Find(&lessons)
	return lessons
}

// updateEnrollmentProgress re-derives Enrollment.Progress as the mean of
// completion percentages over all published lessons of the course. Lessons
// without a progress row count as zero. Reaching 100 completes the
// enrollment; completion never reverts.
func updateEnrollmentProgress(user *models.User, enrollment *courseModels.Enrollment) {
	lessons := courseLessons(enrollment.CourseID)
	if len(lessons) == 0 {
		return
	}

	var sum float64
	for _, lesson := range lessons {
		var progress courseModels.LessonProgress
		if err := database.Database.Db.
			Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", enrollment.UserID, lesson.ID, false).
			First(&progress).Error; err == nil {
			pct := progress.CompletionPercentage
			if pct > 100 {
				pct = 100
			}
			sum += pct
		}
	}

	enrollment.Progress = sum / float64(len(lessons))

	if enrollment.Progress >= 100 && enrollment.Status != courseModels.EnrollmentCompleted {
		enrollment.Status = courseModels.EnrollmentCompleted
		now := time.Now()
		enrollment.CompletedAt = &now

		var course courseModels.Course
		if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err == nil {
			go func(email, name, title string) {
				if err := utils.SendCourseCompletionEmail(email, name, title); err != nil {
					log.Printf("Error sending completion email to %s: %v", email, err)
				}
			}(user.Email, user.Name, course.Title)
		}
	}

	database.Database.Db.Save(enrollment)
}

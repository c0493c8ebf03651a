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

// EnrollInCourse enrolls the authenticated student in a published course.
// A DROPPED enrollment is reactivated, keeping earlier lesson progress.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Capacity check
	if course.MaxStudents > 0 {
		var active int64
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_active = ? AND is_deleted = ?", course.ID, true, false).
			Count(&active)
		if active >= int64(course.MaxStudents) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is full!", nil)
		}
	}

	var enrollment courseModels.Enrollment
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, course.ID, false).
		First(&enrollment).Error

	if err == nil {
		if enrollment.IsActive {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}
		if enrollment.Status == courseModels.EnrollmentCompleted {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already completed!", nil)
		}

		// Reactivate a dropped enrollment, keeping earlier progress
		enrollment.IsActive = true
		enrollment.Status = courseModels.EnrollmentEnrolled
		enrollment.EnrolledAt = time.Now()
		if err := database.Database.Db.Save(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	} else {
		enrollment = courseModels.Enrollment{
			UserID:     userID,
			CourseID:   course.ID,
			Status:     courseModels.EnrollmentEnrolled,
			IsActive:   true,
			EnrolledAt: time.Now(),
		}

		tx := database.Database.Db.Begin()
		if err := tx.Create(&enrollment).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		tx.Commit()
	}

	refreshEnrolledCount(course.ID)

	go func(email, name, title string) {
		if err := utils.SendEnrollmentConfirmation(email, name, title); err != nil {
			log.Printf("Error sending enrollment confirmation to %s: %v", email, err)
		}
	}(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// UnenrollFromCourse deactivates the authenticated student's enrollment
func UnenrollFromCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_active = ? AND is_deleted = ?", userID, courseID, true, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Not enrolled in this course!", nil)
	}

	enrollment.IsActive = false
	enrollment.Status = courseModels.EnrollmentDropped
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll from course!", nil)
	}

	refreshEnrolledCount(uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unenrolled from course successfully!", nil)
}

// GetMyEnrolledCourses lists the authenticated student's active enrollments
func GetMyEnrolledCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		var enrollments []courseModels.Enrollment
		if err := database.Database.Db.
			Where("user_id = ? AND is_active = ? AND is_deleted = ?", userID, true, false).
			Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
			"enrollments": enrollments,
		})
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_active = ? AND is_deleted = ?", userID, true, false)

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

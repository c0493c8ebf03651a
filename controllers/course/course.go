package controllers

import (
	"encoding/json"
	"log"

	"lms/cache"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with search, filters and sorting.
// Public endpoint. The default first page (no filters) is served from redis
// when available.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Search   string `json:"search"`
		Category string `json:"category"`
		Level    string `json:"level"`
		Language string `json:"language"`
		Price    string `json:"price"`
		Sort     string `json:"sort"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	// Set default pagination
	page := 1
	limit := 12
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	isDefaultListing := page == 1 && reqData.Search == "" && reqData.Category == "" &&
		reqData.Level == "" && reqData.Language == "" && reqData.Price == "" && reqData.Sort == ""

	if isDefaultListing {
		if cached := cache.GetCatalog(c.Context()); cached != "" {
			c.Set("Content-Type", "application/json")
			return c.Status(fiber.StatusOK).SendString(cached)
		}
	}

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false)

	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ? OR category LIKE ? OR tags LIKE ?", like, like, like, like)
	}
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}
	if reqData.Language != "" {
		db = db.Where("language = ?", reqData.Language)
	}
	if reqData.Price == "free" {
		db = db.Where("is_free = ?", true)
	} else if reqData.Price == "paid" {
		db = db.Where("is_free = ?", false)
	}

	switch reqData.Sort {
	case "popular":
		db = db.Order("enrolled_count desc")
	case "rating":
		db = db.Order("average_rating desc")
	case "price_low":
		db = db.Order("price asc")
	case "price_high":
		db = db.Order("price desc")
	default:
		db = db.Order("created_at desc")
	}

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	if isDefaultListing {
		envelope := fiber.Map{
			"status":  true,
			"message": "Courses fetched successfully!",
			"data":    response,
		}
		if payload, err := json.Marshal(envelope); err == nil {
			cache.SetCatalog(c.Context(), payload)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// CreateCourse creates a course owned by the authenticated teacher
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := *reqData
	course.TeacherID = userID
	course.Slug = utils.GenerateCourseSlug(database.Database.Db, course.Title, 0)
	course.EnrolledCount = 0
	course.AverageRating = 0

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	cache.InvalidateCatalog(c.Context())

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetCourseBySlug returns course details. Published courses are public;
// unpublished ones are visible to the owner and admins only.
func GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.IsPublished && !isCourseOwnerOrAdmin(c, &course) {
		// Hide existence of unpublished courses
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Module/lesson counts for the detail view
	var moduleCount, lessonCount int64
	database.Database.Db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&moduleCount)
	database.Database.Db.Model(&courseModels.Lesson{}).
		Where("module_id IN (?) AND is_deleted = ?",
			database.Database.Db.Model(&courseModels.Module{}).Select("id").
				Where("course_id = ? AND is_deleted = ?", course.ID, false),
			false).
		Count(&lessonCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":       course,
		"module_count": moduleCount,
		"lesson_count": lessonCount,
	})
}

// UpdateCourse updates a course. Owner or admin only.
func UpdateCourse(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !isCourseOwnerOrAdmin(c, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course teacher can update this course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(map[string]interface{})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Retitling regenerates the slug
	if title, ok := reqData["title"].(string); ok && title != course.Title {
		reqData["slug"] = utils.GenerateCourseSlug(database.Database.Db, title, course.ID)
	}

	if err := database.Database.Db.Model(&course).Updates(reqData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	cache.InvalidateCatalog(c.Context())

	database.Database.Db.Where("id = ?", course.ID).First(&course)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course. Blocked while active enrollments exist.
func DeleteCourse(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !isCourseOwnerOrAdmin(c, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course teacher can delete this course!", nil)
	}

	var activeEnrollments int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_active = ? AND is_deleted = ?", course.ID, true, false).
		Count(&activeEnrollments)
	if activeEnrollments > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course has active enrollments and cannot be deleted!", nil)
	}

	if err := database.Database.Db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	cache.InvalidateCatalog(c.Context())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetMyTeachingCourses lists the authenticated teacher's courses, unpublished included
func GetMyTeachingCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("teacher_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// isCourseOwnerOrAdmin reports whether the request user owns the course or is an admin.
// Works on public routes with optional auth: missing user means false.
func isCourseOwnerOrAdmin(c *fiber.Ctx, course *courseModels.Course) bool {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return false
	}
	if userID == course.TeacherID {
		return true
	}
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return false
	}
	return user.Role == models.RoleAdmin
}

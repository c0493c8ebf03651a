package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// lessonView hides full content from users who are not entitled to it
type lessonView struct {
	courseModels.Lesson
	ContentLocked bool `json:"content_locked"`
}

// GetModuleLessons lists lessons of a module in order. Lesson metadata is
// public for published courses; content bodies stay locked unless the lesson
// is a free preview or the caller is enrolled or owns the course.
func GetModuleLessons(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	owner := isCourseOwnerOrAdmin(c, &course)
	enrolled := isEnrolled(c, course.ID)
	if !owner {
		visible := course.IsPublished && module.IsPublished
		if !visible && !(enrolled && module.IsPublished) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
	}

	db := database.Database.Db.Where("module_id = ? AND is_deleted = ?", module.ID, false)
	if !owner {
		db = db.Where("is_published = ?", true)
	}

	var lessons []courseModels.Lesson
	if err := db.Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	result := make([]lessonView, len(lessons))
	for i, lesson := range lessons {
		result[i] = lessonView{Lesson: lesson}
		if !owner && !enrolled && !lesson.IsFreePreview {
			result[i].Content = ""
			result[i].VideoURL = ""
			result[i].ContentLocked = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": result,
	})
}

// CreateLesson creates a lesson in a module. Course owner only.
func CreateLesson(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !isCourseOwnerOrAdmin(c, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course teacher can manage lessons!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseModels.Lesson)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := *reqData
	lesson.ModuleID = module.ID

	if lesson.OrderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		lesson.OrderIndex = maxOrder + 1
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND order_index = ? AND is_deleted = ?", module.ID, lesson.OrderIndex, false).
			Count(&count)
		if count > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson with this order already exists in the module!", nil)
		}
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// GetLesson returns one lesson. Content requires free preview, enrollment or ownership.
func GetLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lesson.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	owner := isCourseOwnerOrAdmin(c, &course)
	enrolled := isEnrolled(c, course.ID)

	if !owner {
		visible := course.IsPublished && module.IsPublished && lesson.IsPublished
		if !visible && !(enrolled && module.IsPublished && lesson.IsPublished) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
	}

	view := lessonView{Lesson: lesson}
	if !owner && !enrolled && !lesson.IsFreePreview {
		view.Content = ""
		view.VideoURL = ""
		view.ContentLocked = true
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", view)
}

// UpdateLesson updates a lesson. Course owner only.
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	lesson, course, errResp := loadLessonChain(c, lessonID)
	if errResp != nil {
		return errResp(c)
	}

	if !isCourseOwnerOrAdmin(c, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course teacher can manage lessons!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(map[string]interface{})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if orderIndex, ok := reqData["order_index"].(int); ok && orderIndex != lesson.OrderIndex {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND order_index = ? AND id != ? AND is_deleted = ?", lesson.ModuleID, orderIndex, lesson.ID, false).
			Count(&count)
		if count > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson with this order already exists in the module!", nil)
		}
	}

	if err := database.Database.Db.Model(lesson).Updates(reqData).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	database.Database.Db.Where("id = ?", lesson.ID).First(lesson)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson soft-deletes a lesson. Course owner only.
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	lesson, course, errResp := loadLessonChain(c, lessonID)
	if errResp != nil {
		return errResp(c)
	}

	if !isCourseOwnerOrAdmin(c, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course teacher can manage lessons!", nil)
	}

	if err := database.Database.Db.Model(lesson).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// loadLessonChain loads lesson -> module -> course, or a not-found responder
func loadLessonChain(c *fiber.Ctx, lessonID int) (*courseModels.Lesson, *courseModels.Course, func(*fiber.Ctx) error) {
	notFound := func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, nil, notFound
	}
	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lesson.ModuleID, false).First(&module).Error; err != nil {
		return nil, nil, notFound
	}
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		return nil, nil, notFound
	}
	return &lesson, &course, nil
}

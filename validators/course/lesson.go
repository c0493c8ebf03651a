package courseValidator

import (
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validLessonTypes = map[string]bool{
	courseModels.LessonVideo:      true,
	courseModels.LessonText:       true,
	courseModels.LessonQuiz:       true,
	courseModels.LessonAssignment: true,
	courseModels.LessonLive:       true,
}

// CreateLesson validates the lesson payload
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseModels.Lesson)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		// Client cannot choose the primary key
		reqData.Model = gorm.Model{}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.LessonType == "" {
			reqData.LessonType = courseModels.LessonVideo
		} else if !validLessonTypes[reqData.LessonType] {
			errors["lesson_type"] = "Lesson type must be VIDEO, TEXT, QUIZ, ASSIGNMENT or LIVE!"
		}

		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// lessonUpdateFields lists the body keys a lesson update may touch
var lessonUpdateFields = map[string]bool{
	"title":            true,
	"description":      true,
	"lesson_type":      true,
	"content":          true,
	"video_url":        true,
	"duration_minutes": true,
	"order_index":      true,
	"is_published":     true,
	"is_free_preview":  true,
}

// UpdateLesson validates a partial lesson update. Integer fields arrive as
// float64 from the JSON decoder and are converted here.
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := make(map[string]interface{})
		if err := c.BodyParser(&raw); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData := make(map[string]interface{})

		for key, value := range raw {
			if !lessonUpdateFields[key] {
				continue
			}
			reqData[key] = value
		}

		if title, ok := reqData["title"]; ok {
			str, isStr := title.(string)
			if !isStr || strings.TrimSpace(str) == "" {
				errors["title"] = "Title cannot be empty!"
			} else {
				reqData["title"] = strings.TrimSpace(str)
			}
		}
		if lessonType, ok := reqData["lesson_type"]; ok {
			str, isStr := lessonType.(string)
			if !isStr || !validLessonTypes[str] {
				errors["lesson_type"] = "Lesson type must be VIDEO, TEXT, QUIZ, ASSIGNMENT or LIVE!"
			}
		}
		if orderIndex, ok := reqData["order_index"]; ok {
			num, isNum := orderIndex.(float64)
			if !isNum || num < 1 {
				errors["order_index"] = "Order index must be positive!"
			} else {
				reqData["order_index"] = int(num)
			}
		}
		if duration, ok := reqData["duration_minutes"]; ok {
			num, isNum := duration.(float64)
			if !isNum || num < 0 {
				errors["duration_minutes"] = "Duration cannot be negative!"
			} else {
				reqData["duration_minutes"] = int(num)
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		if len(reqData) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

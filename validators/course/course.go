package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validLevels = map[string]bool{
	courseModels.LevelBeginner:     true,
	courseModels.LevelIntermediate: true,
	courseModels.LevelAdvanced:     true,
	courseModels.LevelExpert:       true,
}

var validSorts = map[string]bool{
	"popular":    true,
	"rating":     true,
	"price_low":  true,
	"price_high": true,
	"created_at": true,
}

// CourseList parses catalog query params
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `json:"page"`
			Limit    *int   `json:"limit"`
			Search   string `json:"search"`
			Category string `json:"category"`
			Level    string `json:"level"`
			Language string `json:"language"`
			Price    string `json:"price"`
			Sort     string `json:"sort"`
		})

		if raw := c.Query("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page!", nil)
			}
			reqData.Page = &page
		}
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 1 || limit > 100 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid limit!", nil)
			}
			reqData.Limit = &limit
		}

		reqData.Search = strings.TrimSpace(c.Query("search"))
		reqData.Category = strings.TrimSpace(c.Query("category"))
		reqData.Language = strings.TrimSpace(c.Query("language"))

		reqData.Level = strings.ToUpper(strings.TrimSpace(c.Query("level")))
		if reqData.Level != "" && !validLevels[reqData.Level] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid level filter!", nil)
		}

		reqData.Price = strings.ToLower(strings.TrimSpace(c.Query("price")))
		if reqData.Price != "" && reqData.Price != "free" && reqData.Price != "paid" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Price filter must be free or paid!", nil)
		}

		reqData.Sort = strings.TrimSpace(c.Query("sort"))
		if reqData.Sort != "" && !validSorts[reqData.Sort] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sort option!", nil)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CreateCourse validates the course payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(courseModels.Course)

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

		if reqData.Level == "" {
			reqData.Level = courseModels.LevelBeginner
		} else if !validLevels[reqData.Level] {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE, ADVANCED or EXPERT!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.IsFree {
			reqData.Price = 0
		}
		if reqData.Currency == "" {
			reqData.Currency = "USD"
		}

		if reqData.MaxStudents < 0 {
			errors["max_students"] = "Max students cannot be negative!"
		}
		if reqData.DurationHours < 0 {
			errors["duration_hours"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// courseUpdateFields lists the body keys a course update may touch
var courseUpdateFields = map[string]bool{
	"title":               true,
	"description":         true,
	"language":            true,
	"price":               true,
	"currency":            true,
	"level":               true,
	"category":            true,
	"tags":                true,
	"thumbnail_url":       true,
	"duration_hours":      true,
	"max_students":        true,
	"prerequisites":       true,
	"learning_objectives": true,
	"is_free":             true,
	"is_published":        true,
}

// UpdateCourse validates a partial course update and filters it down to
// updatable columns
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := make(map[string]interface{})
		if err := c.BodyParser(&raw); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData := make(map[string]interface{})

		for key, value := range raw {
			if !courseUpdateFields[key] {
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
		if level, ok := reqData["level"]; ok {
			str, isStr := level.(string)
			if !isStr || !validLevels[str] {
				errors["level"] = "Level must be BEGINNER, INTERMEDIATE, ADVANCED or EXPERT!"
			}
		}
		if price, ok := reqData["price"]; ok {
			num, isNum := price.(float64)
			if !isNum || num < 0 {
				errors["price"] = "Price cannot be negative!"
			}
		}
		if maxStudents, ok := reqData["max_students"]; ok {
			num, isNum := maxStudents.(float64)
			if !isNum || num < 0 {
				errors["max_students"] = "Max students cannot be negative!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		if len(reqData) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam stores the named route param as an int local
func parseIDParam(param, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
		}
		c.Locals(local, id)
		return c.Next()
	}
}

func ParseCourseID() fiber.Handler {
	return parseIDParam("courseId", "courseID")
}

func ParseModuleID() fiber.Handler {
	return parseIDParam("moduleId", "moduleID")
}

func ParseLessonID() fiber.Handler {
	return parseIDParam("lessonId", "lessonID")
}

func ParseReviewID() fiber.Handler {
	return parseIDParam("reviewId", "reviewID")
}

func ParseCategoryID() fiber.Handler {
	return parseIDParam("categoryId", "categoryID")
}

func ParseCourseSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course slug!", nil)
		}
		c.Locals("courseSlug", slug)
		return c.Next()
	}
}

// List parses optional page/limit query params shared by listing endpoints
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
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

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

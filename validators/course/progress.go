package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// Progress validates a lesson progress update
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CompletionPercentage *float64 `json:"completion_percentage"`
			TimeSpentMinutes     int      `json:"time_spent_minutes"`
			IsCompleted          bool     `json:"is_completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CompletionPercentage != nil &&
			(*reqData.CompletionPercentage < 0 || *reqData.CompletionPercentage > 100) {
			errors["completion_percentage"] = "Completion percentage must be between 0 and 100!"
		}
		if reqData.TimeSpentMinutes < 0 {
			errors["time_spent_minutes"] = "Time spent cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

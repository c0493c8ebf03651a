package supportValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var validPriorities = map[string]bool{
	"LOW":    true,
	"MEDIUM": true,
	"HIGH":   true,
	"URGENT": true,
}

var validCategories = map[string]bool{
	"GENERAL":   true,
	"TECHNICAL": true,
	"BILLING":   true,
	"CONTENT":   true,
}

// CreateSupportTicket validates the ticket payload
func CreateSupportTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Subject  string  `json:"subject"`
			Message  string  `json:"message"`
			Priority *string `json:"priority"`
			Category *string `json:"category"`
			CourseID *uint   `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Subject = strings.TrimSpace(reqData.Subject)
		if reqData.Subject == "" {
			errors["subject"] = "Subject is required!"
		}
		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.Message == "" {
			errors["message"] = "Message is required!"
		}

		if reqData.Priority != nil {
			upper := strings.ToUpper(*reqData.Priority)
			if !validPriorities[upper] {
				errors["priority"] = "Priority must be LOW, MEDIUM, HIGH or URGENT!"
			}
			reqData.Priority = &upper
		}
		if reqData.Category != nil {
			upper := strings.ToUpper(*reqData.Category)
			if !validCategories[upper] {
				errors["category"] = "Category must be GENERAL, TECHNICAL, BILLING or CONTENT!"
			}
			reqData.Category = &upper
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSupportTicket", reqData)
		return c.Next()
	}
}

package adminValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var validTicketStatuses = map[string]bool{
	"OPEN":        true,
	"IN_PROGRESS": true,
	"RESOLVED":    true,
	"CLOSED":      true,
}

func ParseRequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("requestId"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
		}
		c.Locals("requestID", id)
		return c.Next()
	}
}

func ParseTicketID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("ticketId"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
		}
		c.Locals("ticketID", id)
		return c.Next()
	}
}

// List parses optional page/limit query params
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

// RejectCertificateRequest validates the rejection payload
func RejectCertificateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "Reason is required!",
			})
		}

		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}

// UpdateTicketStatus validates the ticket status payload
func UpdateTicketStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if !validTicketStatuses[reqData.Status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be OPEN, IN_PROGRESS, RESOLVED or CLOSED!",
			})
		}

		c.Locals("validatedTicketStatus", reqData)
		return c.Next()
	}
}

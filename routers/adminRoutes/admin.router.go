package adminRoutes

import (
	adminControllers "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	adminValidators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/users", adminValidators.List(), adminControllers.ListUsers)

	adminGroup.Get("/certificates/requests", adminControllers.ListCertificateRequests)
	adminGroup.Post("/certificates/requests/:requestId/approve", adminValidators.ParseRequestID(), adminControllers.ApproveCertificateRequest)
	adminGroup.Post("/certificates/requests/:requestId/reject", adminValidators.ParseRequestID(), adminValidators.RejectCertificateRequest(), adminControllers.RejectCertificateRequest)

	adminGroup.Get("/tickets", adminControllers.ListTickets)
	adminGroup.Put("/tickets/:ticketId", adminValidators.ParseTicketID(), adminValidators.UpdateTicketStatus(), adminControllers.UpdateTicketStatus)
}

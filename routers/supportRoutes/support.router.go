package supportRoutes

import (
	supportControllers "lms/controllers/support"
	"lms/middleware"
	supportValidators "lms/validators/support"

	"github.com/gofiber/fiber/v2"
)

func SetupSupportRoutes(app *fiber.App) {
	supportGroup := app.Group("/api/support")

	supportGroup.Post("/tickets", middleware.JWTMiddleware, supportValidators.CreateSupportTicket(), supportControllers.CreateSupportTicket)
	supportGroup.Get("/tickets", middleware.JWTMiddleware, supportControllers.GetMyTickets)
}

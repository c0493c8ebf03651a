package userRoutes

import (
	userControllers "lms/controllers/userControllers"
	"lms/middleware"
	userValidators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users")

	userGroup.Get("/me", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/me", middleware.JWTMiddleware, userValidators.UpdateProfile(), userControllers.UpdateProfile)
}

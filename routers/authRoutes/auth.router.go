package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/token/refresh", authValidators.RefreshToken(), authControllers.RefreshToken)
	authGroup.Post("/verify/email", authValidators.VerifyEmail(), authControllers.VerifyEmail)
	authGroup.Post("/verify/resend", middleware.JWTMiddleware, authControllers.ResendVerification)
	authGroup.Post("/forgot/password", authValidators.ForgotPassword(), authControllers.ForgotPassword)
	authGroup.Post("/reset/password", authValidators.ResetPassword(), authControllers.ResetPassword)
	authGroup.Put("/change/password", middleware.JWTMiddleware, authValidators.ChangePassword(), authControllers.ChangePassword)
}

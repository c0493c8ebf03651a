package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the catalog, content, enrollment, review and
// progress routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Catalog
	courseGroup.Get("/", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), validators.CreateCourse(), controllers.CreateCourse)

	// Fixed paths before the slug wildcard
	courseGroup.Get("/my/teaching", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), controllers.GetMyTeachingCourses)
	courseGroup.Get("/my/enrolled", middleware.JWTMiddleware, validators.List(), controllers.GetMyEnrolledCourses)
	courseGroup.Get("/my/certificates", middleware.JWTMiddleware, controllers.GetMyCertificates)

	// Course detail and management by slug
	courseGroup.Get("/:slug", middleware.OptionalJWTMiddleware, validators.ParseCourseSlug(), controllers.GetCourseBySlug)
	courseGroup.Put("/:slug", middleware.JWTMiddleware, validators.ParseCourseSlug(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:slug", middleware.JWTMiddleware, validators.ParseCourseSlug(), controllers.DeleteCourse)

	// Modules of a course
	courseGroup.Get("/:courseId/modules", middleware.OptionalJWTMiddleware, validators.ParseCourseID(), controllers.GetCourseModules)
	courseGroup.Post("/:courseId/modules", middleware.JWTMiddleware, validators.ParseCourseID(), validators.CreateModule(), controllers.CreateModule)

	// Enrollment (students only)
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.ParseCourseID(), controllers.EnrollInCourse)
	courseGroup.Post("/:courseId/unenroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.ParseCourseID(), controllers.UnenrollFromCourse)

	// Reviews
	courseGroup.Get("/:courseId/reviews", middleware.OptionalJWTMiddleware, validators.ParseCourseID(), validators.List(), controllers.GetCourseReviews)
	courseGroup.Post("/:courseId/reviews", middleware.JWTMiddleware, validators.ParseCourseID(), validators.Review(), controllers.CreateReview)

	// Progress and certificates
	courseGroup.Get("/:courseId/progress", middleware.JWTMiddleware, validators.ParseCourseID(), controllers.GetCourseProgress)
	courseGroup.Post("/:courseId/certificate/request", middleware.JWTMiddleware, validators.ParseCourseID(), controllers.RequestCertificate)

	moduleGroup := app.Group("/api/modules")
	moduleGroup.Get("/:moduleId", middleware.OptionalJWTMiddleware, validators.ParseModuleID(), controllers.GetModule)
	moduleGroup.Put("/:moduleId", middleware.JWTMiddleware, validators.ParseModuleID(), validators.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:moduleId", middleware.JWTMiddleware, validators.ParseModuleID(), controllers.DeleteModule)
	moduleGroup.Get("/:moduleId/lessons", middleware.OptionalJWTMiddleware, validators.ParseModuleID(), controllers.GetModuleLessons)
	moduleGroup.Post("/:moduleId/lessons", middleware.JWTMiddleware, validators.ParseModuleID(), validators.CreateLesson(), controllers.CreateLesson)

	lessonGroup := app.Group("/api/lessons")
	lessonGroup.Get("/:lessonId", middleware.OptionalJWTMiddleware, validators.ParseLessonID(), controllers.GetLesson)
	lessonGroup.Put("/:lessonId", middleware.JWTMiddleware, validators.ParseLessonID(), validators.UpdateLesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:lessonId", middleware.JWTMiddleware, validators.ParseLessonID(), controllers.DeleteLesson)
	lessonGroup.Post("/:lessonId/progress", middleware.JWTMiddleware, validators.ParseLessonID(), validators.Progress(), controllers.UpdateLessonProgress)

	reviewGroup := app.Group("/api/reviews")
	reviewGroup.Put("/:reviewId", middleware.JWTMiddleware, validators.ParseReviewID(), validators.Review(), controllers.UpdateReview)
	reviewGroup.Delete("/:reviewId", middleware.JWTMiddleware, validators.ParseReviewID(), controllers.DeleteReview)

	categoryGroup := app.Group("/api/categories")
	categoryGroup.Get("/", controllers.GetCategories)
	categoryGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.CreateCategory(), controllers.CreateCategory)
	categoryGroup.Put("/:categoryId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.ParseCategoryID(), validators.UpdateCategory(), controllers.UpdateCategory)
	categoryGroup.Delete("/:categoryId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.ParseCategoryID(), controllers.DeleteCategory)
}

package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists active categories with published-course counts. Public.
func GetCategories(c *fiber.Ctx) error {
	var categories []courseModels.Category
	if err := database.Database.Db.Where("is_active = ? AND is_deleted = ?", true, false).
		Order("title asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	type categoryView struct {
		courseModels.Category
		CoursesCount int64 `json:"courses_count"`
	}

	result := make([]categoryView, len(categories))
	for i, category := range categories {
		result[i] = categoryView{Category: category}
		database.Database.Db.Model(&courseModels.Course{}).
			Where("category = ? AND is_published = ? AND is_deleted = ?", category.Title, true, false).
			Count(&result[i].CoursesCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": result,
	})
}

// CreateCategory creates a catalog category. Admin only (route-gated).
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*struct {
		Title       string `json:"title"`
		IconSrc     string `json:"icon_src"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing courseModels.Category
	if err := database.Database.Db.Where("title = ?", reqData.Title).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := courseModels.Category{
		Title:       reqData.Title,
		IconSrc:     reqData.IconSrc,
		Description: reqData.Description,
		IsActive:    true,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// UpdateCategory updates a category. Admin only (route-gated).
func UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	var category courseModels.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	reqData, ok := c.Locals("validatedCategoryUpdate").(*struct {
		Title       *string `json:"title"`
		IconSrc     *string `json:"icon_src"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		category.Title = *reqData.Title
	}
	if reqData.IconSrc != nil {
		category.IconSrc = *reqData.IconSrc
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory soft-deletes a category. Admin only (route-gated).
func DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	var category courseModels.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if err := database.Database.Db.Model(&category).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

package controllers

import (
	"lms/database"
	courseModels "lms/models/course"
)

// refreshEnrolledCount recounts a course's active enrollments into the cached column
func refreshEnrolledCount(courseID uint) {
	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_active = ? AND is_deleted = ?", courseID, true, false).
		Count(&count)
	database.Database.Db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Update("enrolled_count", count)
}

// refreshAverageRating recomputes a course's average rating from published reviews
func refreshAverageRating(courseID uint) {
	var avg float64
	database.Database.Db.Model(&courseModels.Review{}).
		Where("course_id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg)
	database.Database.Db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Update("average_rating", avg)
}

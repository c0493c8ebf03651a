package utils

import (
	"os"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()
	os.Exit(m.Run())
}

func TestGenerateCourseSlug(t *testing.T) {
	db := database.Database.Db

	teacher := models.User{Name: "Slug Teacher", Email: "slug-teacher@example.com", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)

	first := GenerateCourseSlug(db, "Advanced Databases", 0)
	assert.Equal(t, "advanced-databases", first)

	course := courseModels.Course{
		Title:     "Advanced Databases",
		Slug:      first,
		TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&course).Error)

	second := GenerateCourseSlug(db, "Advanced Databases", 0)
	assert.Equal(t, "advanced-databases-1", second)

	require.NoError(t, db.Create(&courseModels.Course{
		Title:     "Advanced Databases",
		Slug:      second,
		TeacherID: teacher.ID,
	}).Error)

	assert.Equal(t, "advanced-databases-2", GenerateCourseSlug(db, "Advanced Databases", 0))

	// The course being retitled does not collide with itself
	assert.Equal(t, "advanced-databases", GenerateCourseSlug(db, "ADVANCED Databases", course.ID))
}

func TestEmailVerificationTokenReplacesPrevious(t *testing.T) {
	db := database.Database.Db

	user := models.User{Name: "Token User", Email: "token-user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	first, err := NewEmailVerificationToken(db, user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), first.ExpiresAt, time.Minute)

	second, err := NewEmailVerificationToken(db, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// Only the fresh token remains live
	var count int64
	db.Model(&models.EmailVerificationToken{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPasswordResetTokenExpiry(t *testing.T) {
	db := database.Database.Db

	user := models.User{Name: "Reset User", Email: "reset-user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	token, err := NewPasswordResetToken(db, user.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)
	assert.False(t, token.IsUsed)
}

func TestNewCertificateNumber(t *testing.T) {
	first := NewCertificateNumber(7, 42)
	second := NewCertificateNumber(7, 42)

	assert.Contains(t, first, "LMS-7-42-")
	assert.NotEqual(t, first, second)
}

func TestReconcileCourseAggregates(t *testing.T) {
	db := database.Database.Db

	teacher := models.User{Name: "Agg Teacher", Email: "agg-teacher@example.com", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)

	student := models.User{Name: "Agg Student", Email: "agg-student@example.com"}
	require.NoError(t, db.Create(&student).Error)

	// Seed a course with drifted counters
	course := courseModels.Course{
		Title:         "Aggregate Course",
		Slug:          "aggregate-course",
		TeacherID:     teacher.ID,
		IsPublished:   true,
		EnrolledCount: 99,
		AverageRating: 9,
	}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:     student.ID,
		CourseID:   course.ID,
		Status:     courseModels.EnrollmentEnrolled,
		IsActive:   true,
		EnrolledAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&courseModels.Review{
		UserID:   student.ID,
		CourseID: course.ID,
		Rating:   4,
	}).Error)

	ReconcileCourseAggregates()

	var refreshed courseModels.Course
	require.NoError(t, db.First(&refreshed, course.ID).Error)
	assert.Equal(t, 1, refreshed.EnrolledCount)
	assert.InDelta(t, 4.0, refreshed.AverageRating, 0.001)
}

func TestPurgeExpiredTokens(t *testing.T) {
	db := database.Database.Db

	user := models.User{Name: "Purge User", Email: "purge-user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	expired := models.EmailVerificationToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&expired).Error)

	live := models.EmailVerificationToken{
		UserID:    user.ID,
		Token:     "live-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&live).Error)

	PurgeExpiredTokens()

	var count int64
	db.Unscoped().Model(&models.EmailVerificationToken{}).
		Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

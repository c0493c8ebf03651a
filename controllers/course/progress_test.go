package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressPath(lessonID uint) string {
	return fmt.Sprintf("/api/lessons/%d/progress", lessonID)
}

func TestProgressRequiresEnrollment(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	lesson := createLesson(t, module, 1)

	resp, _ := doRequest(t, "POST", progressPath(lesson.ID), tokenFor(t, student), fiber.Map{
		"completion_percentage": 50,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProgressUnknownLesson(t *testing.T) {
	student := createUser(t, "STUDENT")

	resp, _ := doRequest(t, "POST", progressPath(999999), tokenFor(t, student), fiber.Map{
		"completion_percentage": 50,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProgressValidation(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	lesson := createLesson(t, module, 1)
	enroll(t, student, course)

	resp, _ := doRequest(t, "POST", progressPath(lesson.ID), tokenFor(t, student), fiber.Map{
		"completion_percentage": 150,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPartialProgressAveragesOverAllLessons(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	first := createLesson(t, module, 1)
	createLesson(t, module, 2)
	enroll(t, student, course)

	resp, _ := doRequest(t, "POST", progressPath(first.ID), tokenFor(t, student), fiber.Map{
		"completion_percentage": 50,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// 50% on one of two lessons, nothing on the other: 25% overall
	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.InDelta(t, 25.0, enrollment.Progress, 0.001)
	assert.Equal(t, courseModels.EnrollmentEnrolled, enrollment.Status)
}

func TestCompletingAllLessonsCompletesEnrollment(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	first := createLesson(t, module, 1)
	second := createLesson(t, module, 2)
	enroll(t, student, course)
	token := tokenFor(t, student)

	for _, lesson := range []*courseModels.Lesson{first, second} {
		resp, _ := doRequest(t, "POST", progressPath(lesson.ID), token, fiber.Map{
			"is_completed":       true,
			"time_spent_minutes": 10,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error)
	assert.InDelta(t, 100.0, enrollment.Progress, 0.001)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestTimeSpentAccumulates(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	lesson := createLesson(t, module, 1)
	enroll(t, student, course)
	token := tokenFor(t, student)

	for i := 0; i < 2; i++ {
		resp, _ := doRequest(t, "POST", progressPath(lesson.ID), token, fiber.Map{
			"completion_percentage": 10,
			"time_spent_minutes":    15,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var progress courseModels.LessonProgress
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND lesson_id = ?", student.ID, lesson.ID).
		First(&progress).Error)
	assert.Equal(t, 30, progress.TimeSpentMinutes)
}

func TestUnpublishedLessonNotTrackable(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	lesson := createLesson(t, module, 1)
	require.NoError(t, database.Database.Db.Model(lesson).Update("is_published", false).Error)
	enroll(t, student, course)

	resp, _ := doRequest(t, "POST", progressPath(lesson.ID), tokenFor(t, student), fiber.Map{
		"completion_percentage": 50,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetCourseProgressBreakdown(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	lesson := createLesson(t, module, 1)
	enroll(t, student, course)
	token := tokenFor(t, student)

	resp, _ := doRequest(t, "POST", progressPath(lesson.ID), token, fiber.Map{
		"completion_percentage": 40,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, env := doRequest(t, "GET", fmt.Sprintf("/api/courses/%d/progress", course.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)
}

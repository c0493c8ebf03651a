package controllers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsPath(courseID uint) string {
	return fmt.Sprintf("/api/courses/%d/reviews", courseID)
}

func TestReviewRequiresEnrollment(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)

	resp, _ := doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, student), fiber.Map{
		"rating": 5,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReviewRatingValidation(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	enroll(t, student, course)

	resp, _ := doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, student), fiber.Map{
		"rating": 6,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestReviewCreateDuplicateAndAverage(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	first := createUser(t, "STUDENT")
	second := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	enroll(t, first, course)
	enroll(t, second, course)

	resp, _ := doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, first), fiber.Map{
		"rating":      5,
		"review_text": "Great course",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, second), fiber.Map{
		"rating": 3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var refreshed courseModels.Course
	require.NoError(t, database.Database.Db.First(&refreshed, course.ID).Error)
	assert.InDelta(t, 4.0, refreshed.AverageRating, 0.001)

	// One review per student per course
	resp, _ = doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, first), fiber.Map{
		"rating": 1,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestReviewDeleteAndRecreate(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	enroll(t, student, course)
	token := tokenFor(t, student)

	resp, env := doRequest(t, "POST", reviewsPath(course.ID), token, fiber.Map{
		"rating": 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var review courseModels.Review
	require.NoError(t, json.Unmarshal(env.Data, &review))

	resp, _ = doRequest(t, "DELETE", fmt.Sprintf("/api/reviews/%d", review.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Recreating after deletion revives the same row
	resp, _ = doRequest(t, "POST", reviewsPath(course.ID), token, fiber.Map{
		"rating": 4,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&courseModels.Review{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	author := createUser(t, "STUDENT")
	other := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	enroll(t, author, course)

	resp, env := doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, author), fiber.Map{
		"rating": 5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var review courseModels.Review
	require.NoError(t, json.Unmarshal(env.Data, &review))

	resp, _ = doRequest(t, "PUT", fmt.Sprintf("/api/reviews/%d", review.ID), tokenFor(t, other), fiber.Map{
		"rating": 1,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDraftCourseReviewsHidden(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, false)

	// Anonymous callers cannot confirm the draft exists
	resp, _ := doRequest(t, "GET", reviewsPath(course.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The owner still sees the listing
	resp, _ = doRequest(t, "GET", reviewsPath(course.ID), tokenFor(t, teacher), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetCourseReviewsPublic(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	enroll(t, student, course)

	resp, _ := doRequest(t, "POST", reviewsPath(course.ID), tokenFor(t, student), fiber.Map{
		"rating": 4,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := doRequest(t, "GET", reviewsPath(course.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Reviews []courseModels.Review `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Reviews, 1)
}

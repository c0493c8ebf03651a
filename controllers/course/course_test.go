package controllers_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseRequiresTeacherRole(t *testing.T) {
	student := createUser(t, "STUDENT")

	resp, env := doRequest(t, "POST", "/api/courses", tokenFor(t, student), fiber.Map{
		"title": "Unauthorized Course",
	})

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Status)
}

func TestCreateCourseGeneratesUniqueSlugs(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	token := tokenFor(t, teacher)

	var slugs []string
	for i := 0; i < 2; i++ {
		resp, env := doRequest(t, "POST", "/api/courses", token, fiber.Map{
			"title": "Introduction to Go",
			"level": "BEGINNER",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var created courseModels.Course
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.Equal(t, teacher.ID, created.TeacherID)
		slugs = append(slugs, created.Slug)
	}

	assert.Equal(t, "introduction-to-go", slugs[0])
	assert.Equal(t, "introduction-to-go-1", slugs[1])
}

func TestGetCourseBySlugHidesUnpublished(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, false)

	// Anonymous callers cannot see the draft
	resp, _ := doRequest(t, "GET", "/api/courses/"+course.Slug, "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The owner can
	resp, env := doRequest(t, "GET", "/api/courses/"+course.Slug, tokenFor(t, teacher), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)
}

func TestUpdateCourseForbiddenForOtherTeacher(t *testing.T) {
	owner := createUser(t, "TEACHER")
	other := createUser(t, "TEACHER")
	course := createCourse(t, owner, true)

	resp, _ := doRequest(t, "PUT", "/api/courses/"+course.Slug, tokenFor(t, other), fiber.Map{
		"description": "hijacked",
	})

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateCourseRegeneratesSlugOnRetitle(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, true)

	resp, env := doRequest(t, "PUT", "/api/courses/"+course.Slug, tokenFor(t, teacher), fiber.Map{
		"title": "Renamed Masterclass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed Masterclass", updated.Title)
	assert.Equal(t, "renamed-masterclass", updated.Slug)
}

func TestDeleteCourseBlockedByActiveEnrollments(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	student := createUser(t, "STUDENT")
	course := createCourse(t, teacher, true)
	enroll(t, student, course)

	resp, _ := doRequest(t, "DELETE", "/api/courses/"+course.Slug, tokenFor(t, teacher), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCourseListOnlyShowsPublished(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	published := createCourse(t, teacher, true)
	draft := createCourse(t, teacher, false)

	resp, env := doRequest(t, "GET", "/api/courses/?search="+url.QueryEscape(published.Title), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Courses []courseModels.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	for _, c := range data.Courses {
		assert.NotEqual(t, draft.ID, c.ID)
		assert.True(t, c.IsPublished)
	}
}

func TestMyTeachingAndCertificatePaths(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, false)
	token := tokenFor(t, teacher)

	resp, env := doRequest(t, "GET", "/api/courses/my/teaching", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Courses []courseModels.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	found := false
	for _, c := range data.Courses {
		if c.ID == course.ID {
			found = true
		}
	}
	assert.True(t, found)

	resp, env = doRequest(t, "GET", "/api/courses/my/certificates", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)
}

func TestCreateCourseIgnoresClientSuppliedID(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	existing := createCourse(t, teacher, true)
	token := tokenFor(t, teacher)

	resp, env := doRequest(t, "POST", "/api/courses", token, fiber.Map{
		"ID":    existing.ID,
		"title": "Primary Key Squatter",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEqual(t, existing.ID, created.ID)
}

func TestCreateLessonIgnoresClientSuppliedID(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	existing := createLesson(t, module, 1)

	resp, env := doRequest(t, "POST", courseModulesLessonsPath(module.ID), tokenFor(t, teacher), fiber.Map{
		"ID":    existing.ID,
		"title": "Lesson Key Squatter",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created courseModels.Lesson
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEqual(t, existing.ID, created.ID)
}

func TestModuleOrderConflict(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, true)
	createModule(t, course, 1)

	resp, _ := doRequest(t, "POST", courseModulesPath(course.ID), tokenFor(t, teacher), fiber.Map{
		"title":       "Duplicate Order",
		"order_index": 1,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestModuleOrderAutoAssigned(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, true)
	createModule(t, course, 1)

	resp, env := doRequest(t, "POST", courseModulesPath(course.ID), tokenFor(t, teacher), fiber.Map{
		"title": "Next Module",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var module courseModels.Module
	require.NoError(t, json.Unmarshal(env.Data, &module))
	assert.Equal(t, 2, module.OrderIndex)
}

func TestLessonContentLockedForAnonymous(t *testing.T) {
	teacher := createUser(t, "TEACHER")
	course := createCourse(t, teacher, true)
	module := createModule(t, course, 1)
	lesson := createLesson(t, module, 1)

	require.NoError(t, database.Database.Db.Model(lesson).Update("content", "secret body").Error)

	resp, env := doRequest(t, "GET", lessonPath(lesson.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view struct {
		Content       string `json:"content"`
		ContentLocked bool   `json:"content_locked"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.ContentLocked)
	assert.Empty(t, view.Content)
}

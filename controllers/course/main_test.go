package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var testApp *fiber.App

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()

	testApp = fiber.New()
	courseRoutes.SetupCourseRoutes(testApp)

	os.Exit(m.Run())
}

// envelope mirrors the JSON response shape of every endpoint
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var userSeq int

func createUser(t *testing.T, role string) *models.User {
	t.Helper()
	userSeq++

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Name:     fmt.Sprintf("User %d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Role:     role,
		Password: string(hash),
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

var courseSeq int

func createCourse(t *testing.T, teacher *models.User, published bool) *courseModels.Course {
	t.Helper()
	courseSeq++

	course := courseModels.Course{
		Title:       fmt.Sprintf("Course %d", courseSeq),
		Slug:        fmt.Sprintf("course-%d", courseSeq),
		TeacherID:   teacher.ID,
		Level:       courseModels.LevelBeginner,
		Currency:    "USD",
		IsPublished: published,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return &course
}

func createModule(t *testing.T, course *courseModels.Course, order int) *courseModels.Module {
	t.Helper()
	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       fmt.Sprintf("Module %d", order),
		OrderIndex:  order,
		IsPublished: true,
	}
	if err := database.Database.Db.Create(&module).Error; err != nil {
		t.Fatalf("create module: %v", err)
	}
	return &module
}

func createLesson(t *testing.T, module *courseModels.Module, order int) *courseModels.Lesson {
	t.Helper()
	lesson := courseModels.Lesson{
		ModuleID:    module.ID,
		Title:       fmt.Sprintf("Lesson %d", order),
		LessonType:  courseModels.LessonVideo,
		OrderIndex:  order,
		IsPublished: true,
	}
	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return &lesson
}

func enroll(t *testing.T, user *models.User, course *courseModels.Course) *courseModels.Enrollment {
	t.Helper()
	enrollment := courseModels.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		Status:     courseModels.EnrollmentEnrolled,
		IsActive:   true,
		EnrolledAt: time.Now(),
	}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
	return &enrollment
}

func courseModulesPath(courseID uint) string {
	return fmt.Sprintf("/api/courses/%d/modules", courseID)
}

func courseModulesLessonsPath(moduleID uint) string {
	return fmt.Sprintf("/api/modules/%d/lessons", moduleID)
}

func lessonPath(lessonID uint) string {
	return fmt.Sprintf("/api/lessons/%d", lessonID)
}

func doRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := testApp.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp, env
}

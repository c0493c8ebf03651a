package adminControllers_test

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
	adminRoutes "lms/routers/adminRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testApp *fiber.App

func TestMain(m *testing.M) {
	config.LoadConfig()
	database.ConnectTestDb()

	testApp = fiber.New()
	adminRoutes.SetupAdminRoutes(testApp)

	os.Exit(m.Run())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var userSeq int

func createUser(t *testing.T, role string) *models.User {
	t.Helper()
	userSeq++

	user := models.User{
		Name:  fmt.Sprintf("Admin Test User %d", userSeq),
		Email: fmt.Sprintf("admin-test-%d@example.com", userSeq),
		Role:  role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return &user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp, env
}

func createCertificateRequest(t *testing.T, student *models.User) *courseModels.CertificateRequest {
	t.Helper()

	teacher := createUser(t, models.RoleTeacher)
	course := courseModels.Course{
		Title:       fmt.Sprintf("Cert Course %d", userSeq),
		Slug:        fmt.Sprintf("cert-course-%d", userSeq),
		TeacherID:   teacher.ID,
		IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	now := time.Now()
	enrollment := courseModels.Enrollment{
		UserID:      student.ID,
		CourseID:    course.ID,
		Status:      courseModels.EnrollmentCompleted,
		Progress:    100,
		EnrolledAt:  now.Add(-time.Hour),
		CompletedAt: &now,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)

	request := courseModels.CertificateRequest{
		UserID:       student.ID,
		CourseID:     course.ID,
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
		RequestedAt:  now,
	}
	require.NoError(t, database.Database.Db.Create(&request).Error)
	return &request
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	student := createUser(t, models.RoleStudent)

	resp, _ := doRequest(t, "GET", "/api/admin/users", tokenFor(t, student), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, "GET", "/api/admin/users", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestApproveCertificateRequest(t *testing.T) {
	admin := createUser(t, models.RoleAdmin)
	student := createUser(t, models.RoleStudent)
	request := createCertificateRequest(t, student)

	path := fmt.Sprintf("/api/admin/certificates/requests/%d/approve", request.ID)
	resp, env := doRequest(t, "POST", path, tokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var certificate courseModels.Certificate
	require.NoError(t, json.Unmarshal(env.Data, &certificate))
	assert.Equal(t, student.ID, certificate.UserID)
	assert.Contains(t, certificate.CertificateNumber, "LMS-")

	var refreshed courseModels.CertificateRequest
	require.NoError(t, database.Database.Db.First(&refreshed, request.ID).Error)
	assert.Equal(t, "APPROVED", refreshed.Status)
	require.NotNil(t, refreshed.ApprovedBy)
	assert.Equal(t, admin.ID, *refreshed.ApprovedBy)

	// Approving twice conflicts
	resp, _ = doRequest(t, "POST", path, tokenFor(t, admin), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRejectCertificateRequest(t *testing.T) {
	admin := createUser(t, models.RoleAdmin)
	student := createUser(t, models.RoleStudent)
	request := createCertificateRequest(t, student)

	path := fmt.Sprintf("/api/admin/certificates/requests/%d/reject", request.ID)

	// A reason is mandatory
	resp, _ := doRequest(t, "POST", path, tokenFor(t, admin), fiber.Map{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, "POST", path, tokenFor(t, admin), fiber.Map{
		"reason": "Progress data inconsistent",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed courseModels.CertificateRequest
	require.NoError(t, database.Database.Db.First(&refreshed, request.ID).Error)
	assert.Equal(t, "REJECTED", refreshed.Status)
	assert.Equal(t, "Progress data inconsistent", refreshed.RejectionReason)
}

func TestUpdateTicketStatus(t *testing.T) {
	admin := createUser(t, models.RoleAdmin)
	student := createUser(t, models.RoleStudent)

	ticket := models.SupportTicket{
		UserID:   student.ID,
		Subject:  "Cannot play videos",
		Message:  "Lesson videos fail to load",
		Status:   "OPEN",
		Priority: "MEDIUM",
		Category: "TECHNICAL",
	}
	require.NoError(t, database.Database.Db.Create(&ticket).Error)

	path := fmt.Sprintf("/api/admin/tickets/%d", ticket.ID)

	resp, _ := doRequest(t, "PUT", path, tokenFor(t, admin), fiber.Map{
		"status": "BOGUS",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, "PUT", path, tokenFor(t, admin), fiber.Map{
		"status": "RESOLVED",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed models.SupportTicket
	require.NoError(t, database.Database.Db.First(&refreshed, ticket.ID).Error)
	assert.Equal(t, "RESOLVED", refreshed.Status)
}

func TestListUsersPagination(t *testing.T) {
	admin := createUser(t, models.RoleAdmin)
	createUser(t, models.RoleStudent)
	createUser(t, models.RoleStudent)

	resp, env := doRequest(t, "GET", "/api/admin/users?page=1&limit=2", tokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Users []models.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Users, 2)
}

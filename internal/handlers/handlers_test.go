package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-api/internal/apperror"
	"intake-api/internal/logging"
	"intake-api/internal/models"
	"intake-api/internal/repository"
	"intake-api/internal/service"
)

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   string                `json:"error"`
	Details []apperror.FieldError `json:"details"`
}

func testLogger(t *testing.T) *logging.ContextLogger {
	t.Helper()
	logger, err := logging.New(logging.Options{Level: "debug", Output: io.Discard})
	require.NoError(t, err)
	return logger
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := testLogger(t)
	services := service.NewServices(repository.NewInMemoryStore(), logger, service.Options{})
	t.Cleanup(services.Close)

	router := gin.New()
	New(services, logger).Register(router)
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func jsonBody(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return buf.String()
}

const validContactJSON = `{"firstName":"A","lastName":"B","email":"a@b.com","phone":"9876543210","message":"hi"}`

func TestCreateContact(t *testing.T) {
	router := newRouter(t)

	status, env := do(t, router, http.MethodPost, "/api/contact", validContactJSON)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var msg models.ContactMessage
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.NotEmpty(t, msg.ID.String())
	assert.Equal(t, "a@b.com", msg.Email)
	assert.Nil(t, msg.CourseInterest)
	assert.False(t, msg.CreatedAt.IsZero())

	status, env = do(t, router, http.MethodGet, "/api/contact", "")
	require.Equal(t, http.StatusOK, status)

	var list []models.ContactMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, msg.ID, list[0].ID)
}

func TestCreateContactInvalid(t *testing.T) {
	router := newRouter(t)

	status, env := do(t, router, http.MethodPost, "/api/contact",
		`{"firstName":"","lastName":"B","email":"nope","phone":"12345","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, service.InvalidDataMessage, env.Error)

	fields := map[string]string{}
	for _, d := range env.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, map[string]string{
		"firstName": "First name is required",
		"email":     "Please enter a valid email address",
		"phone":     "Please enter a valid phone number",
	}, fields)

	_, env = do(t, router, http.MethodGet, "/api/contact", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestMalformedBody(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/api/contact", "/api/course-applications", "/api/demo-applications", "/api/event-registrations"} {
		status, env := do(t, router, http.MethodPost, path, `{"firstName":`)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, service.InvalidDataMessage, env.Error, path)
		require.Len(t, env.Details, 1, path)
		assert.Equal(t, "body", env.Details[0].Field, path)
	}
}

func TestEmptyListsAreArrays(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{
		"/api/contact",
		"/api/course-applications",
		"/api/demo-applications",
		"/api/event-registrations",
		"/api/newsletter/subscriptions",
	} {
		status, env := do(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, status, path)
		assert.True(t, env.Success, path)
		assert.JSONEq(t, `[]`, string(env.Data), path)
	}
}

func TestEventRegistration(t *testing.T) {
	router := newRouter(t)

	reg := map[string]string{
		"name":             "Priya",
		"degree":           "B.E",
		"year":             "3",
		"college_name":     "ABC College",
		"university_name":  "XYZ University",
		"contact_number":   "+91 98765 43210",
		"email_id":         "priya@example.com",
		"certificate_code": "C2C-2024-0001",
	}

	status, env := do(t, router, http.MethodPost, "/api/event-registrations", jsonBody(t, reg))
	require.Equal(t, http.StatusOK, status, env.Error)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["created_at"])
	assert.Nil(t, created["alternate_number"])

	reg["certificate_code"] = "C2C-24-1"
	status, env = do(t, router, http.MethodPost, "/api/event-registrations", jsonBody(t, reg))
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "certificate_code", env.Details[0].Field)
	assert.Equal(t, "Certificate code must be in format C2C-YYYY-XXXX", env.Details[0].Message)

	_, env = do(t, router, http.MethodGet, "/api/event-registrations", "")
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestNewsletterFlow(t *testing.T) {
	router := newRouter(t)

	status, env := do(t, router, http.MethodPost, "/api/newsletter/subscribe", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = do(t, router, http.MethodPost, "/api/newsletter/subscribe", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	assert.Equal(t, service.AlreadySubscribedError, env.Error)

	status, env = do(t, router, http.MethodPost, "/api/newsletter/subscribe", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, service.InvalidEmailMessage, env.Error)

	status, env = do(t, router, http.MethodDelete, "/api/newsletter/unsubscribe", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, service.EmailRequiredMessage, env.Error)

	status, env = do(t, router, http.MethodDelete, "/api/newsletter/unsubscribe", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)

	_, env = do(t, router, http.MethodGet, "/api/newsletter/subscriptions", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

type brokenContacts struct{}

func (brokenContacts) Kind() string { return models.KindContactMessage }

func (brokenContacts) Submit(context.Context, *models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	return nil, errors.New("connection reset by peer")
}

func (brokenContacts) List(context.Context) ([]*models.ContactMessage, error) {
	return nil, errors.New("connection reset by peer")
}

func TestUnexpectedErrorsAreGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewContactHandler(brokenContacts{}, testLogger(t)).Register(router)

	status, env := do(t, router, http.MethodPost, "/api/contact", validContactJSON)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to submit contact message", env.Error)
	assert.Empty(t, env.Details)

	status, env = do(t, router, http.MethodGet, "/api/contact", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fetch contact messages", env.Error)
	assert.NotContains(t, env.Error, "connection reset")
}

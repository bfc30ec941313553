// Package client submits intake forms to the API the way the marketing site
// does: fields are checked locally first, and only a clean form is sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"intake-api/internal/apperror"
	"intake-api/internal/models"
	"intake-api/internal/validation"
)

// BannerMessage is shown for any failed submission that isn't a conflict.
const BannerMessage = "There was an error submitting your form. Please try again."

// FieldErrors maps a field's JSON name to the message to show beside it.
// Returned before any request is made.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// SubmitError is a request the server answered with success=false.
type SubmitError struct {
	Status  int
	Message string
	Details []apperror.FieldError
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submission failed with status %d: %s", e.Status, e.Message)
}

// StatusMessage is the banner text for the failure. Conflicts carry a message
// meant for the user; everything else gets the generic banner.
func (e *SubmitError) StatusMessage() string {
	if e.Status == http.StatusConflict && e.Message != "" {
		return e.Message
	}
	return BannerMessage
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient gets one with
// a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) SubmitContact(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	return submit[*models.ContactMessage](ctx, c, http.MethodPost, "/api/contact", req)
}

func (c *Client) SubmitCourseApplication(ctx context.Context, req *models.CreateCourseApplicationRequest) (*models.CourseApplication, error) {
	return submit[*models.CourseApplication](ctx, c, http.MethodPost, "/api/course-applications", req)
}

func (c *Client) SubmitDemoApplication(ctx context.Context, req *models.CreateDemoApplicationRequest) (*models.DemoApplication, error) {
	return submit[*models.DemoApplication](ctx, c, http.MethodPost, "/api/demo-applications", req)
}

func (c *Client) SubmitEventRegistration(ctx context.Context, req *models.CreateEventRegistrationRequest) (*models.EventRegistration, error) {
	return submit[*models.EventRegistration](ctx, c, http.MethodPost, "/api/event-registrations", req)
}

func (c *Client) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	req := &models.SubscribeRequest{Email: validation.NormalizeEmail(email)}
	return submit[*models.NewsletterSubscription](ctx, c, http.MethodPost, "/api/newsletter/subscribe", req)
}

func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return FieldErrors{"email": validation.Message("email", "notblank")}
	}
	_, err := send[json.RawMessage](ctx, c, http.MethodDelete, "/api/newsletter/unsubscribe", &models.UnsubscribeRequest{Email: email})
	return err
}

func submit[Rec any](ctx context.Context, c *Client, method, path string, req interface{}) (Rec, error) {
	if errs := validation.Struct(req); errs != nil {
		var zero Rec
		return zero, FieldErrors(errs.Messages())
	}
	return send[Rec](ctx, c, method, path, req)
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   string                `json:"error"`
	Details []apperror.FieldError `json:"details"`
}

func send[Rec any](ctx context.Context, c *Client, method, path string, body interface{}) (Rec, error) {
	var zero Rec

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return zero, fmt.Errorf("failed to reach %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, &SubmitError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return zero, &SubmitError{Status: resp.StatusCode, Message: env.Error, Details: env.Details}
	}

	var out Rec
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return zero, fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return out, nil
}

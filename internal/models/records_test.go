package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewContactMessageAssignsServerFields(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	req := &CreateContactMessageRequest{
		FirstName:      "A",
		LastName:       "B",
		Email:          "a@b.com",
		Phone:          "9876543210",
		CourseInterest: strPtr("   "),
		Message:        "hi",
	}

	msg := NewContactMessage(req, now)

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, now, msg.CreatedAt)
	assert.Nil(t, msg.CourseInterest, "blank optional field is stored as null")
	assert.Equal(t, msg.ID.String(), msg.StorageKey())
	assert.Equal(t, now, msg.CreatedTime())
}

func TestNewContactMessageUniqueIDs(t *testing.T) {
	req := &CreateContactMessageRequest{FirstName: "A"}
	a := NewContactMessage(req, time.Now())
	b := NewContactMessage(req, time.Now())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestOptionalCopiesValue(t *testing.T) {
	in := strPtr("2025-05-01")
	req := &CreateDemoApplicationRequest{PreferredDate: in}

	app := NewDemoApplication(req, time.Now())
	require.NotNil(t, app.PreferredDate)
	assert.Equal(t, "2025-05-01", *app.PreferredDate)

	*in = "changed"
	assert.Equal(t, "2025-05-01", *app.PreferredDate)
}

func TestNewsletterSubscriptionKeyedByEmail(t *testing.T) {
	sub := NewNewsletterSubscription(&SubscribeRequest{Email: "a@b.com"}, time.Now())
	assert.Equal(t, "a@b.com", sub.StorageKey())
}

func TestContactMessageJSONShape(t *testing.T) {
	msg := NewContactMessage(&CreateContactMessageRequest{FirstName: "A"}, time.Now())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "createdAt")
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "courseInterest")
	assert.Nil(t, fields["courseInterest"])
}

func TestEventRegistrationJSONShape(t *testing.T) {
	reg := NewEventRegistration(&CreateEventRegistrationRequest{Name: "A"}, time.Now())

	raw, err := json.Marshal(reg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"created_at"`)
	assert.Contains(t, string(raw), `"college_name"`)
}

func TestEnvelopeOmitsEmptyParts(t *testing.T) {
	raw, err := json.Marshal(OK(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))

	raw, err = json.Marshal(OK([]*ContactMessage{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[]}`, string(raw))

	raw, err = json.Marshal(Fail("Email is required", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Email is required"}`, string(raw))
}

func TestCloneDetachesOptionalFields(t *testing.T) {
	date := "2025-07-01"
	orig := &DemoApplication{Name: "Demo", PreferredDate: &date}

	c := orig.Clone()
	*c.PreferredDate = "2025-08-01"
	c.Name = "Other"

	assert.Equal(t, "2025-07-01", *orig.PreferredDate)
	assert.Equal(t, "Demo", orig.Name)
	assert.Nil(t, (&EventRegistration{}).Clone().AlternateNumber)
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record kinds, used as storage namespaces and span attributes.
const (
	KindContactMessage         = "contact_message"
	KindCourseApplication      = "course_application"
	KindDemoApplication        = "demo_application"
	KindNewsletterSubscription = "newsletter_subscription"
	KindEventRegistration      = "event_registration"
)

type ContactMessage struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CourseInterest *string   `json:"courseInterest"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (m *ContactMessage) StorageKey() string     { return m.ID.String() }
func (m *ContactMessage) CreatedTime() time.Time { return m.CreatedAt }

func (m *ContactMessage) Clone() *ContactMessage {
	c := *m
	c.CourseInterest = copyString(m.CourseInterest)
	return &c
}

type CourseApplication struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CourseName      string    `json:"courseName"`
	ExperienceLevel string    `json:"experienceLevel"`
	InterestMessage string    `json:"interestMessage"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (a *CourseApplication) StorageKey() string     { return a.ID.String() }
func (a *CourseApplication) CreatedTime() time.Time { return a.CreatedAt }

func (a *CourseApplication) Clone() *CourseApplication {
	c := *a
	return &c
}

type DemoApplication struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	CourseForDemo string    `json:"courseForDemo"`
	AvailableTime string    `json:"availableTime"`
	PreferredDate *string   `json:"preferredDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *DemoApplication) StorageKey() string     { return a.ID.String() }
func (a *DemoApplication) CreatedTime() time.Time { return a.CreatedAt }

func (a *DemoApplication) Clone() *DemoApplication {
	c := *a
	c.PreferredDate = copyString(a.PreferredDate)
	return &c
}

// NewsletterSubscription is keyed by its email address.
type NewsletterSubscription struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *NewsletterSubscription) StorageKey() string     { return s.Email }
func (s *NewsletterSubscription) CreatedTime() time.Time { return s.CreatedAt }

func (s *NewsletterSubscription) Clone() *NewsletterSubscription {
	c := *s
	return &c
}

type EventRegistration struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Degree          string    `json:"degree"`
	Year            string    `json:"year"`
	CollegeName     string    `json:"college_name"`
	UniversityName  string    `json:"university_name"`
	ContactNumber   string    `json:"contact_number"`
	AlternateNumber *string   `json:"alternate_number"`
	EmailID         string    `json:"email_id"`
	CertificateCode string    `json:"certificate_code"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r *EventRegistration) StorageKey() string     { return r.ID.String() }
func (r *EventRegistration) CreatedTime() time.Time { return r.CreatedAt }

func (r *EventRegistration) Clone() *EventRegistration {
	c := *r
	c.AlternateNumber = copyString(r.AlternateNumber)
	return &c
}

// optional maps a blank form value to a JSON null.
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

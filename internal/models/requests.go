package models

import (
	"time"

	"github.com/google/uuid"
)

// Create requests carry only caller-supplied fields. id and createdAt are
// assigned by the server, so they have no place here.

type CreateContactMessageRequest struct {
	FirstName      string  `json:"firstName" validate:"notblank"`
	LastName       string  `json:"lastName" validate:"notblank"`
	Email          string  `json:"email" validate:"notblank,formemail"`
	Phone          string  `json:"phone" validate:"notblank,phone"`
	CourseInterest *string `json:"courseInterest,omitempty"`
	Message        string  `json:"message" validate:"notblank"`
}

func NewContactMessage(req *CreateContactMessageRequest, now time.Time) *ContactMessage {
	return &ContactMessage{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		CourseInterest: optional(req.CourseInterest),
		Message:        req.Message,
		CreatedAt:      now,
	}
}

type CreateCourseApplicationRequest struct {
	FullName        string `json:"fullName" validate:"notblank"`
	Email           string `json:"email" validate:"notblank,formemail"`
	Phone           string `json:"phone" validate:"notblank,phone"`
	CourseName      string `json:"courseName" validate:"notblank"`
	ExperienceLevel string `json:"experienceLevel" validate:"notblank"`
	InterestMessage string `json:"interestMessage" validate:"notblank"`
}

func NewCourseApplication(req *CreateCourseApplicationRequest, now time.Time) *CourseApplication {
	return &CourseApplication{
		ID:              uuid.New(),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		CourseName:      req.CourseName,
		ExperienceLevel: req.ExperienceLevel,
		InterestMessage: req.InterestMessage,
		CreatedAt:       now,
	}
}

type CreateDemoApplicationRequest struct {
	Name          string  `json:"name" validate:"notblank"`
	Phone         string  `json:"phone" validate:"notblank,phone"`
	Email         string  `json:"email" validate:"notblank,formemail"`
	CourseForDemo string  `json:"courseForDemo" validate:"notblank"`
	AvailableTime string  `json:"availableTime" validate:"notblank"`
	PreferredDate *string `json:"preferredDate,omitempty"`
}

func NewDemoApplication(req *CreateDemoApplicationRequest, now time.Time) *DemoApplication {
	return &DemoApplication{
		ID:            uuid.New(),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		CourseForDemo: req.CourseForDemo,
		AvailableTime: req.AvailableTime,
		PreferredDate: optional(req.PreferredDate),
		CreatedAt:     now,
	}
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"notblank,formemail"`
}

// NewNewsletterSubscription expects an already normalized email.
func NewNewsletterSubscription(req *SubscribeRequest, now time.Time) *NewsletterSubscription {
	return &NewsletterSubscription{
		Email:     req.Email,
		CreatedAt: now,
	}
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

type CreateEventRegistrationRequest struct {
	Name            string  `json:"name" validate:"notblank"`
	Degree          string  `json:"degree" validate:"notblank"`
	Year            string  `json:"year" validate:"notblank"`
	CollegeName     string  `json:"college_name" validate:"notblank"`
	UniversityName  string  `json:"university_name" validate:"notblank"`
	ContactNumber   string  `json:"contact_number" validate:"notblank,phone"`
	AlternateNumber *string `json:"alternate_number,omitempty" validate:"omitempty,optphone"`
	EmailID         string  `json:"email_id" validate:"notblank,formemail"`
	CertificateCode string  `json:"certificate_code" validate:"notblank,certcode"`
}

func NewEventRegistration(req *CreateEventRegistrationRequest, now time.Time) *EventRegistration {
	return &EventRegistration{
		ID:              uuid.New(),
		Name:            req.Name,
		Degree:          req.Degree,
		Year:            req.Year,
		CollegeName:     req.CollegeName,
		UniversityName:  req.UniversityName,
		ContactNumber:   req.ContactNumber,
		AlternateNumber: optional(req.AlternateNumber),
		EmailID:         req.EmailID,
		CertificateCode: req.CertificateCode,
		CreatedAt:       now,
	}
}

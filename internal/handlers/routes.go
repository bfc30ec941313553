package handlers

import (
	"github.com/gin-gonic/gin"

	"intake-api/internal/logging"
	"intake-api/internal/models"
	"intake-api/internal/service"
)

type (
	ContactHandler           = FormHandler[models.CreateContactMessageRequest, *models.ContactMessage]
	CourseApplicationHandler = FormHandler[models.CreateCourseApplicationRequest, *models.CourseApplication]
	DemoApplicationHandler   = FormHandler[models.CreateDemoApplicationRequest, *models.DemoApplication]
	EventRegistrationHandler = FormHandler[models.CreateEventRegistrationRequest, *models.EventRegistration]
)

var (
	ContactRoute = FormRoute{
		Path:         "/api/contact",
		SubmitFailed: "Failed to submit contact message",
		FetchFailed:  "Failed to fetch contact messages",
	}
	CourseApplicationRoute = FormRoute{
		Path:         "/api/course-applications",
		SubmitFailed: "Failed to submit course application",
		FetchFailed:  "Failed to fetch course applications",
	}
	DemoApplicationRoute = FormRoute{
		Path:         "/api/demo-applications",
		SubmitFailed: "Failed to submit demo application",
		FetchFailed:  "Failed to fetch demo applications",
	}
	EventRegistrationRoute = FormRoute{
		Path:         "/api/event-registrations",
		SubmitFailed: "Failed to submit event registration",
		FetchFailed:  "Failed to fetch event registrations",
	}
)

func NewContactHandler(svc FormService[models.CreateContactMessageRequest, *models.ContactMessage], logger *logging.ContextLogger) *ContactHandler {
	return NewFormHandler(svc, ContactRoute, logger)
}

func NewCourseApplicationHandler(svc FormService[models.CreateCourseApplicationRequest, *models.CourseApplication], logger *logging.ContextLogger) *CourseApplicationHandler {
	return NewFormHandler(svc, CourseApplicationRoute, logger)
}

func NewDemoApplicationHandler(svc FormService[models.CreateDemoApplicationRequest, *models.DemoApplication], logger *logging.ContextLogger) *DemoApplicationHandler {
	return NewFormHandler(svc, DemoApplicationRoute, logger)
}

func NewEventRegistrationHandler(svc FormService[models.CreateEventRegistrationRequest, *models.EventRegistration], logger *logging.ContextLogger) *EventRegistrationHandler {
	return NewFormHandler(svc, EventRegistrationRoute, logger)
}

// Handlers is the full set of route handlers over one Services bundle.
type Handlers struct {
	Contacts           *ContactHandler
	CourseApplications *CourseApplicationHandler
	DemoApplications   *DemoApplicationHandler
	Newsletter         *NewsletterHandler
	EventRegistrations *EventRegistrationHandler
}

func New(s *service.Services, logger *logging.ContextLogger) *Handlers {
	return &Handlers{
		Contacts:           NewContactHandler(s.Contacts, logger),
		CourseApplications: NewCourseApplicationHandler(s.CourseApplications, logger),
		DemoApplications:   NewDemoApplicationHandler(s.DemoApplications, logger),
		Newsletter:         NewNewsletterHandler(s.Newsletter, logger),
		EventRegistrations: NewEventRegistrationHandler(s.EventRegistrations, logger),
	}
}

func (h *Handlers) Register(r gin.IRoutes) {
	h.Contacts.Register(r)
	h.CourseApplications.Register(r)
	h.DemoApplications.Register(r)
	h.Newsletter.Register(r)
	h.EventRegistrations.Register(r)
}

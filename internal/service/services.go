package service

import (
	"time"

	"intake-api/internal/cache"
	"intake-api/internal/logging"
	"intake-api/internal/models"
	"intake-api/internal/repository"
)

type (
	ContactService           = FormService[models.CreateContactMessageRequest, *models.ContactMessage]
	CourseApplicationService = FormService[models.CreateCourseApplicationRequest, *models.CourseApplication]
	DemoApplicationService   = FormService[models.CreateDemoApplicationRequest, *models.DemoApplication]
	EventRegistrationService = FormService[models.CreateEventRegistrationRequest, *models.EventRegistration]
)

type Options struct {
	ListTTL       time.Duration
	SweepInterval time.Duration
	Clock         Clock
}

// Services is one service per record kind over a shared store.
type Services struct {
	Contacts           *ContactService
	CourseApplications *CourseApplicationService
	DemoApplications   *DemoApplicationService
	Newsletter         *NewsletterService
	EventRegistrations *EventRegistrationService

	closers []func()
}

func NewServices(store *repository.Store, logger *logging.ContextLogger, opts Options) *Services {
	s := &Services{}

	s.Contacts = newForm(s, opts, logger, models.KindContactMessage, store.ContactMessages, models.NewContactMessage, "")
	s.CourseApplications = newForm(s, opts, logger, models.KindCourseApplication, store.CourseApplications, models.NewCourseApplication, "")
	s.DemoApplications = newForm(s, opts, logger, models.KindDemoApplication, store.DemoApplications, models.NewDemoApplication, "")
	s.EventRegistrations = newForm(s, opts, logger, models.KindEventRegistration, store.EventRegistrations, models.NewEventRegistration, "")
	s.Newsletter = NewNewsletterService(
		newForm(s, opts, logger, models.KindNewsletterSubscription, store.NewsletterSubscriptions, models.NewNewsletterSubscription, InvalidEmailMessage),
	)

	return s
}

func newForm[Req any, Rec repository.Record](
	s *Services,
	opts Options,
	logger *logging.ContextLogger,
	kind string,
	repo repository.Repository[Rec],
	build func(*Req, time.Time) Rec,
	invalidMessage string,
) *FormService[Req, Rec] {
	cfg := FormConfig[Req, Rec]{
		Kind:           kind,
		Repo:           repo,
		Build:          build,
		ListTTL:        opts.ListTTL,
		Clock:          opts.Clock,
		InvalidMessage: invalidMessage,
		Logger:         logger,
	}
	if opts.ListTTL > 0 {
		c := cache.NewInMemoryCache[[]Rec](opts.SweepInterval)
		s.closers = append(s.closers, c.Close)
		cfg.Cache = c
	}
	return NewFormService(cfg)
}

// Close stops the cache sweepers.
func (s *Services) Close() {
	for _, c := range s.closers {
		c()
	}
}

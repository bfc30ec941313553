package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"intake-api/internal/apperror"
	"intake-api/internal/models"
	"intake-api/internal/validation"
)

const (
	InvalidEmailMessage    = "Invalid email address"
	AlreadySubscribedError = "This email is already subscribed to our newsletter"
	EmailRequiredMessage   = "Email is required"
)

// NewsletterService manages subscriptions keyed by email address.
type NewsletterService struct {
	forms *FormService[models.SubscribeRequest, *models.NewsletterSubscription]

	// held across the existence check and the insert
	mu sync.Mutex
}

func NewNewsletterService(forms *FormService[models.SubscribeRequest, *models.NewsletterSubscription]) *NewsletterService {
	return &NewsletterService{forms: forms}
}

// Subscribe stores a subscription for req.Email. A second subscription for
// the same (normalized) address is a conflict, not an overwrite.
func (s *NewsletterService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.NewsletterSubscription, error) {
	ctx, span := s.forms.tracer.Start(ctx, "newsletter.service.subscribe")
	defer span.End()

	normalized := models.SubscribeRequest{Email: validation.NormalizeEmail(req.Email)}
	if err := s.forms.check(ctx, &normalized); err != nil {
		span.SetAttributes(attribute.Bool("validation.failed", true))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.forms.repo.Get(ctx, normalized.Email)
	switch {
	case err == nil:
		s.forms.logger.WarnWithTracing(ctx, "Duplicate newsletter subscription", logrus.Fields{
			"email": normalized.Email,
		})
		span.SetAttributes(attribute.Bool("conflict", true))
		return nil, apperror.Conflict(AlreadySubscribedError)
	case !errors.Is(err, apperror.ErrNotFound):
		span.RecordError(err)
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	sub, err := s.forms.persist(ctx, s.forms.build(&normalized, s.forms.now()))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return sub, nil
}

// Unsubscribe removes the subscription for email. Removing an address that
// was never subscribed succeeds.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	ctx, span := s.forms.tracer.Start(ctx, "newsletter.service.unsubscribe")
	defer span.End()

	email = validation.NormalizeEmail(email)
	if email == "" {
		return apperror.Validation(EmailRequiredMessage, []apperror.FieldError{{
			Field:   "email",
			Rule:    "notblank",
			Message: validation.Message("email", "notblank"),
		}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.forms.repo.Delete(ctx, email); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	s.forms.invalidate(ctx)

	s.forms.logger.InfoWithTracing(ctx, "Removed newsletter subscription", logrus.Fields{
		"email": email,
	})
	span.SetAttributes(attribute.Bool("success", true))
	return nil
}

func (s *NewsletterService) List(ctx context.Context) ([]*models.NewsletterSubscription, error) {
	return s.forms.List(ctx)
}

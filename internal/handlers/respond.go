package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/apperror"
	"intake-api/internal/logging"
	"intake-api/internal/models"
)

// BodyMessage is the detail reported when a request body is not JSON.
const BodyMessage = "Request body must be valid JSON"

func bodyDetails() []apperror.FieldError {
	return []apperror.FieldError{{Field: "body", Rule: "json", Message: BodyMessage}}
}

func badBody(c *gin.Context, ctx context.Context, logger *logging.ContextLogger, span trace.Span, err error, message, endpoint string) {
	logger.WarnWithTracing(ctx, "Invalid request payload", logrus.Fields{
		"endpoint": endpoint,
		"error":    err.Error(),
	})
	span.RecordError(err)
	c.JSON(http.StatusBadRequest, models.Fail(message, bodyDetails()))
}

// fail maps a service error onto the envelope. Validation and conflict errors
// carry their own client-facing message; anything else is reported with
// unexpected and only the log sees the cause.
func fail(c *gin.Context, ctx context.Context, logger *logging.ContextLogger, span trace.Span, err error, unexpected, endpoint string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		span.SetAttributes(validationFailed)
		c.JSON(http.StatusBadRequest, models.Fail(err.Error(), apperror.FieldsOf(err)))
	case errors.Is(err, apperror.ErrConflict):
		logger.WarnWithTracing(ctx, err.Error(), logrus.Fields{
			"endpoint": endpoint,
		})
		c.JSON(http.StatusConflict, models.Fail(err.Error(), nil))
	default:
		logger.ErrorWithTracing(ctx, unexpected, err, logrus.Fields{
			"endpoint": endpoint,
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, unexpected)
		c.JSON(http.StatusInternalServerError, models.Fail(unexpected, nil))
	}
}

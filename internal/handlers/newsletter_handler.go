package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/logging"
	"intake-api/internal/models"
	"intake-api/internal/service"
)

const (
	SubscribeFailed     = "Failed to subscribe to newsletter"
	SubscriptionsFailed = "Failed to fetch newsletter subscriptions"
	UnsubscribeFailed   = "Failed to unsubscribe from newsletter"
)

type NewsletterHandler struct {
	service *service.NewsletterService
	logger  *logging.ContextLogger
	tracer  trace.Tracer
}

func NewNewsletterHandler(svc *service.NewsletterService, logger *logging.ContextLogger) *NewsletterHandler {
	return &NewsletterHandler{
		service: svc,
		logger:  logger,
		tracer:  otel.Tracer("intake-handler"),
	}
}

func (h *NewsletterHandler) Register(r gin.IRoutes) {
	r.POST("/api/newsletter/subscribe", h.Subscribe)
	r.GET("/api/newsletter/subscriptions", h.Subscriptions)
	r.DELETE("/api/newsletter/unsubscribe", h.Unsubscribe)
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	const endpoint = "POST /api/newsletter/subscribe"

	ctx, span := h.tracer.Start(c.Request.Context(), "newsletter.handler.subscribe")
	defer span.End()

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, ctx, h.logger, span, err, service.InvalidEmailMessage, endpoint)
		return
	}

	sub, err := h.service.Subscribe(ctx, &req)
	if err != nil {
		fail(c, ctx, h.logger, span, err, SubscribeFailed, endpoint)
		return
	}

	h.logger.InfoWithTracing(ctx, "Subscribed to newsletter", logrus.Fields{
		"email":    sub.Email,
		"endpoint": endpoint,
	})

	span.SetAttributes(
		attribute.String("subscription.email", sub.Email),
		succeeded,
	)
	c.JSON(http.StatusOK, models.OK(sub))
}

func (h *NewsletterHandler) Subscriptions(c *gin.Context) {
	const endpoint = "GET /api/newsletter/subscriptions"

	ctx, span := h.tracer.Start(c.Request.Context(), "newsletter.handler.list")
	defer span.End()

	subs, err := h.service.List(ctx)
	if err != nil {
		fail(c, ctx, h.logger, span, err, SubscriptionsFailed, endpoint)
		return
	}

	span.SetAttributes(
		attribute.Int("record.count", len(subs)),
		succeeded,
	)
	c.JSON(http.StatusOK, models.OK(subs))
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	const endpoint = "DELETE /api/newsletter/unsubscribe"

	ctx, span := h.tracer.Start(c.Request.Context(), "newsletter.handler.unsubscribe")
	defer span.End()

	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, ctx, h.logger, span, err, service.EmailRequiredMessage, endpoint)
		return
	}

	if err := h.service.Unsubscribe(ctx, req.Email); err != nil {
		fail(c, ctx, h.logger, span, err, UnsubscribeFailed, endpoint)
		return
	}

	span.SetAttributes(succeeded)
	c.JSON(http.StatusOK, models.Envelope{Success: true})
}

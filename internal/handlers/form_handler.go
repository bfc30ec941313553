package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/logging"
	"intake-api/internal/models"
	"intake-api/internal/repository"
	"intake-api/internal/service"
)

var (
	succeeded        = attribute.Bool("success", true)
	validationFailed = attribute.Bool("validation.failed", true)
)

// FormService is what a FormHandler needs from the service layer.
type FormService[Req any, Rec repository.Record] interface {
	Kind() string
	Submit(ctx context.Context, req *Req) (Rec, error)
	List(ctx context.Context) ([]Rec, error)
}

// FormRoute names the endpoint a FormHandler is mounted on and the messages
// it reports when something unexpected goes wrong.
type FormRoute struct {
	Path         string
	SubmitFailed string
	FetchFailed  string
}

// FormHandler serves POST (submit) and GET (list) for one record kind.
type FormHandler[Req any, Rec repository.Record] struct {
	service FormService[Req, Rec]
	route   FormRoute
	logger  *logging.ContextLogger
	tracer  trace.Tracer
}

func NewFormHandler[Req any, Rec repository.Record](svc FormService[Req, Rec], route FormRoute, logger *logging.ContextLogger) *FormHandler[Req, Rec] {
	return &FormHandler[Req, Rec]{
		service: svc,
		route:   route,
		logger:  logger,
		tracer:  otel.Tracer("intake-handler"),
	}
}

func (h *FormHandler[Req, Rec]) Register(r gin.IRoutes) {
	r.POST(h.route.Path, h.Create)
	r.GET(h.route.Path, h.List)
}

func (h *FormHandler[Req, Rec]) Create(c *gin.Context) {
	kind := h.service.Kind()
	endpoint := "POST " + h.route.Path

	ctx, span := h.tracer.Start(c.Request.Context(), kind+".handler.create")
	defer span.End()

	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, ctx, h.logger, span, err, service.InvalidDataMessage, endpoint)
		return
	}

	h.logger.InfoWithTracing(ctx, "Received submission", logrus.Fields{
		"kind":     kind,
		"endpoint": endpoint,
	})

	record, err := h.service.Submit(ctx, &req)
	if err != nil {
		fail(c, ctx, h.logger, span, err, h.route.SubmitFailed, endpoint)
		return
	}

	span.SetAttributes(
		attribute.String("record.key", record.StorageKey()),
		succeeded,
	)
	c.JSON(http.StatusOK, models.OK(record))
}

func (h *FormHandler[Req, Rec]) List(c *gin.Context) {
	kind := h.service.Kind()
	endpoint := "GET " + h.route.Path

	ctx, span := h.tracer.Start(c.Request.Context(), kind+".handler.list")
	defer span.End()

	records, err := h.service.List(ctx)
	if err != nil {
		fail(c, ctx, h.logger, span, err, h.route.FetchFailed, endpoint)
		return
	}

	h.logger.DebugWithTracing(ctx, "Listed submissions", logrus.Fields{
		"kind":     kind,
		"count":    len(records),
		"endpoint": endpoint,
	})

	span.SetAttributes(
		attribute.Int("record.count", len(records)),
		succeeded,
	)
	c.JSON(http.StatusOK, models.OK(records))
}

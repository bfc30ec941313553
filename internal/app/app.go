package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"intake-api/internal/config"
	"intake-api/internal/handlers"
	"intake-api/internal/logging"
	"intake-api/internal/repository"
	"intake-api/internal/service"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Port           string
	GinMode        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ListTTL        time.Duration
	SweepInterval  time.Duration
	Logger         *logging.ContextLogger
	TracerProvider trace.TracerProvider
	// Store defaults to a fresh in-memory store.
	Store *repository.Store
	// Clock defaults to time.Now.
	Clock service.Clock
}

// FromConfig maps loaded configuration onto an application Config. The store
// is supplied separately because choosing a backend may need a live client.
func FromConfig(cfg *config.Config, logger *logging.ContextLogger, tp trace.TracerProvider, store *repository.Store) *Config {
	return &Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Port:           cfg.Server.Port,
		GinMode:        cfg.Server.GinMode,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		ListTTL:        cfg.Cache.ListTTL,
		SweepInterval:  cfg.Cache.SweepInterval,
		Logger:         logger,
		TracerProvider: tp,
		Store:          store,
	}
}

type Application struct {
	server   *http.Server
	config   *Config
	router   *gin.Engine
	store    *repository.Store
	services *service.Services
	handlers *handlers.Handlers
}

func Build(config *Config) *Application {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	if config.Logger == nil {
		config.Logger = logging.NewLogger()
	}

	store := config.Store
	if store == nil {
		store = repository.NewInMemoryStore()
	}

	services := service.NewServices(store, config.Logger, service.Options{
		ListTTL:       config.ListTTL,
		SweepInterval: config.SweepInterval,
		Clock:         config.Clock,
	})
	routes := handlers.New(services, config.Logger)

	router := gin.New()
	router.Use(gin.Recovery())
	if config.TracerProvider != nil {
		router.Use(otelgin.Middleware(config.ServiceName, otelgin.WithTracerProvider(config.TracerProvider)))
	} else {
		router.Use(otelgin.Middleware(config.ServiceName))
	}
	router.Use(requestLogger(config.Logger))

	routes.Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   config.ServiceName,
		})
	})

	server := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return &Application{
		server:   server,
		config:   config,
		router:   router,
		store:    store,
		services: services,
		handlers: routes,
	}
}

func requestLogger(logger *logging.ContextLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.WithTracing(c.Request.Context()).WithFields(map[string]interface{}{
			"method":     method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}).Info("HTTP request completed")
	}
}

func (app *Application) Run() error {
	app.config.Logger.Info("Starting server on :" + app.config.Port)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the cache sweepers.
func (app *Application) Shutdown(ctx context.Context) error {
	app.config.Logger.Info("Shutting down server...")
	err := app.server.Shutdown(ctx)
	app.services.Close()
	return err
}

func (app *Application) GetStore() *repository.Store {
	return app.store
}

func (app *Application) GetServices() *service.Services {
	return app.services
}

func (app *Application) GetHandlers() *handlers.Handlers {
	return app.handlers
}

func (app *Application) GetRouter() *gin.Engine {
	return app.router
}

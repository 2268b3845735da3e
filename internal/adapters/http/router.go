package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen/posts-gateway/internal/adapters/http/problem"
	"github.com/jsamuelsen/posts-gateway/internal/platform/config"
	"github.com/jsamuelsen/posts-gateway/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// Translator renders every failure as a problem detail.
	Translator *problem.Translator

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// PostHandler handles the post and comment endpoints.
	PostHandler *handlers.PostHandler

	// DisableSwagger turns off the /-/swagger UI.
	DisableSwagger bool
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - turn panics into problem responses
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - server span, then metrics and trace headers
//  5. Logging - request logging (skips /-/ endpoints)
//  6. Error handler - render errors attached with c.Error
//
// Route groups:
//   - /-/ (internal): health, metrics and swagger
//   - /api/v1/ (public API): posts and comments
//
// Unsupported methods on known routes yield 405 and unknown routes 404,
// both through the translator.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	translator := cfg.Translator
	if translator == nil {
		translator = problem.NewTranslator(problem.Config{Logger: logger})
	}

	serviceName := "posts-gateway"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(translator),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Tracing(serviceName),
		telemetry.Middleware(),
		middleware.Logging(logger),
		middleware.ErrorHandler(translator),
	)

	engine.NoMethod(middleware.MethodNotAllowed)
	engine.NoRoute(middleware.RouteNotFound)

	internal := engine.Group("/-")
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(internal)
	}

	if !cfg.DisableSwagger {
		internal.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
		))
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.PostHandler != nil {
		cfg.PostHandler.RegisterPostRoutes(apiV1)
	}
}

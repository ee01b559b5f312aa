// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, structured logging, panic recovery, metrics,
// compression, idempotency, rate limiting, CORS, and security headers.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics (+ /metrics endpoint)
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP)
//  10. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/edupath/go-edupath-backend/internal/config"
	"github.com/edupath/go-edupath-backend/internal/groq"
	"github.com/edupath/go-edupath-backend/internal/http/handlers"
	"github.com/edupath/go-edupath-backend/internal/http/middleware"
	"github.com/edupath/go-edupath-backend/internal/services"
	"github.com/edupath/go-edupath-backend/internal/store"
)

// RegisterRoutes attaches all middleware and endpoints to the Gin engine.
func RegisterRoutes(r *gin.Engine, st store.Store, llm handlers.CompletionClient, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress list-heavy reference responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{
		MaxLen: 200,
		TTL:    cfg.IdempotencyTTL,
	}))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all when none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (dev only)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← store
	userSvc := services.NewUserService(st)
	chatSvc := services.NewChatService(st)
	refSvc := services.NewReferenceService(st)
	h := handlers.New(userSvc, chatSvc, refSvc, llm)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api"
	{
		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users/lookup", h.LookupUser)

		// Chat
		api.GET("/chat/messages", h.ListMessages)
		api.POST("/chat/messages", h.PostMessage)
		api.POST("/chat/completion", h.Completion)

		// College cutoffs
		api.GET("/college-cutoffs", h.ListCutoffs)
		api.POST("/college-cutoffs", h.CreateCutoff)
		api.GET("/college-cutoffs/programs", h.Programs)
		api.GET("/college-cutoffs/universities", h.Universities)
		api.GET("/college-cutoffs/countries", h.Countries)

		// Scholarships
		api.GET("/scholarships", h.ListScholarships)
		api.POST("/scholarships", h.CreateScholarship)
	}
}

// NewCompletionClient builds the Groq client from configuration.
func NewCompletionClient(cfg config.GroqConfig) *groq.Client {
	return groq.New(cfg.APIKey, cfg.Model, cfg.BaseURL)
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; oversized bodies error on read downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

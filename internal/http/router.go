// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/documind/go-documind-backend/internal/clients/extraction"
	"github.com/documind/go-documind-backend/internal/clients/ragchat"
	"github.com/documind/go-documind-backend/internal/config"
	"github.com/documind/go-documind-backend/internal/domain"
	"github.com/documind/go-documind-backend/internal/http/handlers"
	"github.com/documind/go-documind-backend/internal/http/middleware"
	"github.com/documind/go-documind-backend/internal/repo"
	"github.com/documind/go-documind-backend/internal/services"
)

// userRepoShim adapts the repository free functions to the services.UserRepo
// interface expected by the AuthService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type userRepoShim struct{}

// CreateUser proxies repo.CreateUser.
func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, email, passwordHash string) (*domain.User, error) {
	return repo.CreateUser(ctx, db, email, passwordHash)
}

// GetUserByEmail proxies repo.GetUserByEmail.
func (userRepoShim) GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmail(ctx, db, email)
}

// GetUser proxies repo.GetUser.
func (userRepoShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// documentRepoShim adapts the document repository functions to the
// services.DocumentRepo interface.
type documentRepoShim struct{}

// ListDocuments proxies repo.ListDocuments.
func (documentRepoShim) ListDocuments(ctx context.Context, db *gorm.DB, userID string) ([]domain.Document, error) {
	return repo.ListDocuments(ctx, db, userID)
}

// GetDocument proxies repo.GetDocument.
func (documentRepoShim) GetDocument(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Document, error) {
	return repo.GetDocument(ctx, db, id, userID)
}

// documentWriterShim adapts repo.CreateDocument to the
// services.DocumentWriter interface used by the ingestion workflow.
type documentWriterShim struct{}

// CreateDocument proxies repo.CreateDocument.
func (documentWriterShim) CreateDocument(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return repo.CreateDocument(ctx, db, doc)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (uploads get a larger cap on the extract route)
//  6. Gzip compression
//  7. Metrics
//  8. Bearer-token resolution (so replay lookup and rate keys see the user)
//  9. Idempotency validator (before rate limiter to allow bypass on replay)
//  10. Rate limiter (per user/IP, bypass on replay)
//  11. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// Dependency injection: services ← clients/repo/db. Built up front so
	// the auth service's verifier is available to the middleware chain.
	extractClient := extraction.New(cfg.ExtractAPIURL, cfg.ExtractAPIKey, cfg.ExtractTimeout)
	chatClient := ragchat.New(cfg.ChatAPIURL, cfg.ChatTimeout)

	authSvc := services.NewAuthService(db, userRepoShim{}, cfg.JWTSecret, cfg.JWTTTL)
	ingestSvc := services.NewIngestService(db, extractClient, documentWriterShim{}, services.IngestOptions{
		Delay:         cfg.IngestDelay,
		MaxBatchFiles: cfg.MaxBatchFiles,
	})
	docSvc := services.NewDocumentService(db, documentRepoShim{})
	chatSvc := services.NewChatService(chatClient)
	reportSvc := services.NewReportService(extractClient)

	h := handlers.New(authSvc, ingestSvc, docSvc, chatSvc, reportSvc)

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			middleware.HeaderIdempotencyKey,
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body size limit (1 MiB; the upload route gets its own cap)
	extractPath := joinBase(cfg.APIBasePath, "/documents/extract")
	r.Use(limitBodyExcept(1<<20, extractPath, 50<<20))

	// 6) Compress responses (document lists and dashboards are JSON-heavy)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Resolve bearer tokens for everyone. The replay lookup and the rate
	// limiter both key on the account, so the user id must be in the context
	// before they run. Rejection is still per route via RequireAuth.
	r.Use(middleware.OptionalAuth(authSvc.VerifyToken))

	// 9) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			Scope:  "extract",
			MaxLen: 200,
		},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 10) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 11) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
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

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Auth
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", h.Me)
		api.POST("/auth/logout", h.Logout)

		// Extraction works for guests too; a valid token attaches ownership.
		// Token resolution already happened in the global chain.
		api.POST("/documents/extract", h.ExtractBatch)

		// Account-only surfaces
		authed := api.Group("", middleware.RequireAuth(authSvc.VerifyToken))
		{
			authed.GET("/documents", h.ListDocuments)
			authed.GET("/dashboard", h.Dashboard)
			authed.POST("/documents/reports", h.GenerateReport)
			authed.POST("/chat", h.Chat)
		}
	}
}

// limitBodyExcept caps request bodies at maxBytes for every endpoint except
// uploadPath, which gets uploadMax instead (multipart batches carry PDFs and
// scans). Requests exceeding the cap cause downstream body reads to error.
func limitBodyExcept(maxBytes int64, uploadPath string, uploadMax int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := maxBytes
		if c.Request.URL.Path == uploadPath {
			limit = uploadMax
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// joinBase joins the API base path and a route path without doubling slashes.
func joinBase(base, path string) string {
	if base == "" || base == "/" {
		return path
	}
	return base + path
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

// Package httpapi wires the HTTP transport (Gin) to the bug service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
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

	"github.com/tbourn/go-bug-tracker/docs"
	"github.com/tbourn/go-bug-tracker/internal/config"
	"github.com/tbourn/go-bug-tracker/internal/domain"
	"github.com/tbourn/go-bug-tracker/internal/http/handlers"
	"github.com/tbourn/go-bug-tracker/internal/http/middleware"
	"github.com/tbourn/go-bug-tracker/internal/repo"
	"github.com/tbourn/go-bug-tracker/internal/services"
)

// bugRepoShim adapts the repository free functions to services.BugRepo so the
// service never sees a *gorm.DB.
type bugRepoShim struct{ db *gorm.DB }

func (s bugRepoShim) ListBugs(ctx context.Context) ([]domain.Bug, error) {
	return repo.ListBugs(ctx, s.db)
}

func (s bugRepoShim) GetBug(ctx context.Context, id string) (*domain.Bug, error) {
	return repo.GetBug(ctx, s.db, id)
}

func (s bugRepoShim) CreateBug(ctx context.Context, b *domain.Bug) (*domain.Bug, error) {
	return repo.CreateBug(ctx, s.db, b)
}

func (s bugRepoShim) UpdateBug(ctx context.Context, id string, fields map[string]any) (*domain.Bug, error) {
	return repo.UpdateBug(ctx, s.db, id, fields)
}

func (s bugRepoShim) DeleteBug(ctx context.Context, id string) error {
	return repo.DeleteBug(ctx, s.db, id)
}

func (s bugRepoShim) BugsStats(ctx context.Context) (int64, *time.Time, error) {
	return repo.BugsStats(ctx, s.db)
}

func (s bugRepoShim) CreateBugOnce(ctx context.Context, key string, b *domain.Bug, ttl time.Duration) (*domain.Bug, bool, error) {
	return repo.CreateBugOnce(ctx, s.db, key, b, ttl)
}

// corsHeaders are the request headers browsers may send cross-origin.
var corsHeaders = []string{"Origin", "Content-Type", "Accept", "If-None-Match", middleware.HeaderIdempotencyKey}

// corsExposed are the response headers readable by cross-origin scripts.
var corsExposed = []string{"X-Request-ID", "Content-Length", "ETag", handlers.HeaderReplayed}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the bug API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per client IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(limitBody(maxBody))

	// promhttp negotiates its own compression.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, key, now)
			if err != nil || rec == nil {
				return false, err
			}
			return true, nil
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    corsExposed,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
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
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    corsExposed,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", handlers.Health)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	svc := services.NewBugService(bugRepoShim{db: db})
	if cfg.IdempotencyTTL > 0 {
		svc.IdempotencyTTL = cfg.IdempotencyTTL
	}
	h := handlers.New(svc)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		if cfg.APIBasePath != "" && cfg.APIBasePath != "/" {
			api.GET("/health", handlers.Health)
		}

		api.GET("/bugs", h.ListBugs)
		api.POST("/bugs", h.CreateBug)
		api.GET("/bugs/:id", h.GetBug)
		api.PUT("/bugs/:id", h.UpdateBug)
		api.DELETE("/bugs/:id", h.DeleteBug)
	}
}

// limitBody caps the request body at maxBytes using http.MaxBytesReader.
// Reads past the cap fail with *http.MaxBytesError, which handlers map to 413.
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

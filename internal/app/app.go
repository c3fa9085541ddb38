package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/config"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/middleware"
	"github.com/homeline/storefront/internal/modules/processing/markdown"
	pkgcron "github.com/homeline/storefront/internal/pkg/cron"
	"github.com/homeline/storefront/internal/pkg/jwt"
	pkgredis "github.com/homeline/storefront/internal/pkg/redis"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *database.Store
	redis  *pkgredis.Client
	tokens *jwt.Manager
	gate   *middleware.Gate
	logger *zap.Logger
	sched  *pkgcron.Scheduler
	cancel context.CancelFunc
}

// New wires the application: content store, optional Redis, routes, jobs.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := database.Open(cfg.ContentDir(), logger.Named("store"), markdown.Render)
	if err != nil {
		return nil, fmt.Errorf("content store: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis_url is empty, rate limiting and idempotence are disabled")
	}

	secret := cfg.Admin.JWTSecret
	if secret == "" {
		// Validate only allows this in development.
		secret = "storefront-development-secret"
		logger.Warn("admin.jwt_secret is empty, using the development secret")
	}
	tokens, err := jwt.New(secret, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	if !cfg.AdminEnabled() {
		logger.Warn("admin.password_hash is empty, admin login is disabled")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		router: router,
		store:  store,
		redis:  rc,
		tokens: tokens,
		gate:   middleware.NewGate(tokens, cfg.Admin.CookieName),
		logger: logger,
		sched:  pkgcron.New(logger.Named("cron")),
		cancel: cancel,
	}
	a.registerRoutes()
	go a.sched.Start(ctx)

	return a, nil
}

// corsConfig allows any origin in development and only the allowed_origins
// entries otherwise. An empty list outside development allows nothing.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Idempotence-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.IsDev() {
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOriginFunc = originAllower(cfg.AllowedOrigins)
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Store returns the content store.
func (a *App) Store() *database.Store { return a.store }

// Shutdown stops background jobs and closes Redis.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
}

var processStart = time.Now()

package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/middleware"
	"github.com/homeline/storefront/internal/modules/auth"
	"github.com/homeline/storefront/internal/modules/catalog/brand"
	"github.com/homeline/storefront/internal/modules/catalog/category"
	"github.com/homeline/storefront/internal/modules/catalog/collection"
	"github.com/homeline/storefront/internal/modules/catalog/product"
	"github.com/homeline/storefront/internal/modules/contact"
	"github.com/homeline/storefront/internal/modules/content/page"
	"github.com/homeline/storefront/internal/modules/processing/markdown"
	"github.com/homeline/storefront/internal/modules/storage/backup"
	"github.com/homeline/storefront/internal/modules/syndication/sitemap"
	"github.com/homeline/storefront/internal/modules/system/health"
	"github.com/homeline/storefront/internal/pkg/mail"
	"github.com/homeline/storefront/internal/pkg/response"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	cfg := a.cfg
	authMW := a.gate.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    cfg.SiteName,
		"version": "1.0.0",
		"site":    cfg.SiteURL,
	}

	// Shared services
	products := product.NewService(a.store)
	categories := category.NewService(a.store)
	collections := collection.NewService(a.store)
	brands := brand.NewService(a.store)
	pages := page.NewService(a.store)
	messages := contact.NewService(a.store, a.notifier(), contact.Options{
		SiteName:   cfg.SiteName,
		SiteURL:    cfg.SiteURL,
		Recipients: cfg.Mail.To,
		Logger:     a.logger,
	})
	auditor := health.NewAuditor(a.store)
	backups := backup.NewService(a.store.Root(), backup.Options{
		Dir:      cfg.BackupDir(),
		Keep:     cfg.Backup.Keep,
		Uploader: a.uploader(),
		Prefix:   cfg.Backup.S3.Prefix,
		Logger:   a.logger,
	})

	// Root-level endpoints
	sitemap.NewHandler(a.store, cfg.SiteURL, a.logger).RegisterRoutes(r)

	// Versioned API
	api := r.Group(apiPrefix)
	api.Use(a.gate.OptionalAuth())

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptime := time.Since(processStart)
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptime.Milliseconds(),
			"humanize":  humanizeDuration(uptime),
		})
	})

	// Infrastructure
	health.NewHandler(auditor, a.pinger(), a.sched).RegisterRoutes(api, authMW)
	backup.NewHandler(backups).RegisterRoutes(api, authMW)
	markdown.NewHandler(a.store).RegisterRoutes(api, authMW)

	// Admin session
	loginLimit := middleware.RateLimit(a.counter(), "login",
		cfg.Admin.LoginRateLimit, time.Duration(cfg.Admin.LoginRateWindow)*time.Second, a.logger)
	auth.NewHandler(auth.NewService(cfg.Admin.PasswordHash, a.tokens), a.gate.CookieName(), loginLimit).
		RegisterRoutes(api, authMW)

	// Catalog
	product.NewHandler(products).RegisterRoutes(api, authMW)
	category.NewHandler(categories, products).RegisterRoutes(api, authMW)
	collection.NewHandler(collections, products).RegisterRoutes(api, authMW)
	brand.NewHandler(brands, products).RegisterRoutes(api, authMW)

	// Content
	page.NewHandler(pages).RegisterRoutes(api, authMW)

	contactLimit := middleware.RateLimit(a.counter(), "contact",
		cfg.Contact.RateLimit, time.Duration(cfg.Contact.RateWindow)*time.Second, a.logger)
	contact.NewHandler(messages, contactLimit, middleware.Idempotence(a.claimer())).RegisterRoutes(api, authMW)

	registerCronJobs(a.sched, cfg, auditor, messages, backups, a.logger)
}

// The accessors below return untyped nil when the backing service is not
// configured, so middleware sees a nil interface and turns itself off.

func (a *App) counter() middleware.Counter {
	if a.redis == nil {
		return nil
	}
	return a.redis
}

func (a *App) claimer() middleware.Claimer {
	if a.redis == nil {
		return nil
	}
	return a.redis
}

func (a *App) pinger() health.Pinger {
	if a.redis == nil {
		return nil
	}
	return a.redis
}

func (a *App) notifier() contact.Notifier {
	m := a.cfg.Mail
	if !m.Enable {
		return nil
	}
	return mail.New(mail.Config{
		Enable:    m.Enable,
		Host:      m.Host,
		Port:      m.Port,
		User:      m.User,
		Pass:      m.Pass,
		From:      m.From,
		ReplyTo:   m.ReplyTo,
		UseResend: m.UseResend,
		ResendKey: m.ResendKey,
	})
}

func (a *App) uploader() backup.Uploader {
	s3cfg := a.cfg.Backup.S3
	if !s3cfg.Enable {
		return nil
	}
	u, err := backup.NewS3Uploader(s3cfg)
	if err != nil {
		a.logger.Warn("s3 backup upload disabled", zap.Error(err))
		return nil
	}
	return u
}

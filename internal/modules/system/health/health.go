package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/pkg/cron"
	"github.com/homeline/storefront/internal/pkg/response"
)

// Pinger reports whether an optional backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auditor *Auditor
	redis   Pinger
	sched   *cron.Scheduler
}

// NewHandler takes a nil redis when none is configured and a nil scheduler
// when jobs are disabled.
func NewHandler(auditor *Auditor, redis Pinger, sched *cron.Scheduler) *Handler {
	return &Handler{auditor: auditor, redis: redis, sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/health", h.status)

	admin := rg.Group("/health", authMW)
	admin.GET("/content", h.content)

	cronGroup := admin.Group("/cron")
	cronGroup.GET("", h.listJobs)
	cronGroup.POST("/run/:name", h.runJob)
}

func (h *Handler) status(c *gin.Context) {
	body := gin.H{"status": "ok", "redis": "disabled"}
	code := http.StatusOK
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["redis"] = "down"
			code = http.StatusServiceUnavailable
		} else {
			body["redis"] = "ok"
		}
	}
	c.JSON(code, body)
}

func (h *Handler) content(c *gin.Context) {
	report, err := h.auditor.Audit()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"healthy":    report.Healthy(),
		"problems":   report.Problems,
		"dangling":   report.Dangling,
		"checked_at": report.CheckedAt,
	})
}

func (h *Handler) listJobs(c *gin.Context) {
	if h.sched == nil {
		response.OK(c, []cron.Item{})
		return
	}
	response.OK(c, h.sched.List())
}

func (h *Handler) runJob(c *gin.Context) {
	if h.sched == nil {
		response.NotFoundMsg(c, "jobs are disabled")
		return
	}
	if err := h.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.OK(c, gin.H{"message": "job finished"})
}

package app

import (
	"context"
	"time"

	"github.com/homeline/storefront/internal/config"
	"github.com/homeline/storefront/internal/modules/contact"
	"github.com/homeline/storefront/internal/modules/storage/backup"
	"github.com/homeline/storefront/internal/modules/system/health"
	pkgcron "github.com/homeline/storefront/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers the scheduled background jobs. A zero interval
// in the config leaves a job out.
func registerCronJobs(sched *pkgcron.Scheduler, cfg *config.AppConfig, auditor *health.Auditor, messages *contact.Service, backups *backup.Service, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	if minutes := cfg.Jobs.AuditIntervalMinutes; minutes > 0 {
		sched.Register(pkgcron.Job{
			Name:        "audit_content",
			Description: "Check documents for decode errors and dangling references",
			Interval:    time.Duration(minutes) * time.Minute,
			Fn: func(ctx context.Context) error {
				report, err := auditor.Audit()
				if err != nil {
					return err
				}
				for _, p := range report.Problems {
					cronLogger.Warn("malformed document", zap.String("kind", p.Kind), zap.String("slug", p.Slug), zap.String("error", p.Error))
				}
				for _, ref := range report.Dangling {
					cronLogger.Warn("dangling reference", zap.String("product", ref.Product), zap.String("field", ref.Field), zap.String("target", ref.Target))
				}
				cronLogger.Info("content audit finished", zap.Int("problems", len(report.Problems)), zap.Int("dangling", len(report.Dangling)))
				return nil
			},
		})
	}

	if days := cfg.Jobs.PruneReadMessagesDays; days > 0 {
		sched.Register(pkgcron.Job{
			Name:        "prune_messages",
			Description: "Delete read contact messages past the retention period",
			Interval:    24 * time.Hour,
			Fn: func(ctx context.Context) error {
				n, err := messages.PruneRead(time.Now().AddDate(0, 0, -days))
				if err != nil {
					return err
				}
				cronLogger.Info("pruned read messages", zap.Int("deleted", n))
				return nil
			},
		})
	}

	if hours := cfg.Backup.IntervalHours; hours > 0 {
		sched.Register(pkgcron.Job{
			Name:        "backup_content",
			Description: "Archive the content tree and upload it when s3 is configured",
			Interval:    time.Duration(hours) * time.Hour,
			Fn: func(ctx context.Context) error {
				_, err := backups.Run(ctx)
				return err
			},
		})
	}
}

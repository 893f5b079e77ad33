package app

import (
	"time"

	"github.com/tracknest/core/internal/modules/aggregation"
	pkgcron "github.com/tracknest/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	rollup := aggregation.NewService(db, logger.Named("rollup"))

	sched.Register(pkgcron.Job{
		Name:        aggregation.JobName,
		Description: "Fold raw events into hourly per-website summaries",
		Interval:    time.Hour,
		Fn:          rollup.Run,
	})
}

package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/amberleaf/amberspa/internal/domain"
)

const (
	staleCartAge = 30 * 24 * time.Hour
	oprLogMaxAge = 90 * 24 * time.Hour
)

// initJob registers background maintenance jobs.
func (a *Application) initJob() {
	a.sched = cron.New()

	_, err := a.sched.AddFunc("@hourly", func() {
		if a.cartStore == nil {
			return
		}
		purged, err := a.cartStore.PurgeStale(staleCartAge)
		if err != nil {
			zap.L().Error("stale cart purge failed", zap.Error(err))
			return
		}
		if purged > 0 {
			zap.L().Info("purged stale carts", zap.Int("count", purged))
		}
	})
	if err != nil {
		zap.L().Error("failed to register cart purge job", zap.Error(err))
	}

	_, err = a.sched.AddFunc("@daily", func() {
		cutoff := time.Now().Add(-oprLogMaxAge)
		res := a.gormDB.Where("opt_time < ?", cutoff).Delete(&domain.SysOprLog{})
		if res.Error != nil {
			zap.L().Error("operation log prune failed", zap.Error(res.Error))
			return
		}
		if res.RowsAffected > 0 {
			zap.L().Info("pruned operation logs", zap.Int64("count", res.RowsAffected))
		}
	})
	if err != nil {
		zap.L().Error("failed to register log prune job", zap.Error(err))
	}

	a.sched.Start()
}

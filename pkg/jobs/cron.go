// Package jobs runs the scheduled housekeeping tasks.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/dustward/campbase/pkg/announcements"
	"github.com/dustward/campbase/pkg/ratelimit"
	"github.com/robfig/cron/v3"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron          *cron.Cron
	announcements *announcements.Service
	sweepers      []*ratelimit.MemoryStore
	logger        *log.Logger
}

// NewCronManager creates a new cron manager. sweepers lists the
// in-memory rate limit stores to compact periodically; pass none when
// the redis store is in use.
func NewCronManager(announcementService *announcements.Service, sweepers []*ratelimit.MemoryStore, logger *log.Logger) *CronManager {
	if logger == nil {
		logger = log.Default()
	}

	return &CronManager{
		cron:          cron.New(),
		announcements: announcementService,
		sweepers:      sweepers,
		logger:        logger,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	cm.logger.Println("Setting up cron jobs...")

	// Every 10 minutes: drop expired rate limit windows so the tables
	// don't grow with one entry per visitor IP.
	if len(cm.sweepers) > 0 {
		_, err := cm.cron.AddFunc("*/10 * * * *", func() {
			removed := 0
			for _, store := range cm.sweepers {
				removed += store.Sweep()
			}
			if removed > 0 {
				cm.logger.Printf("🧹 Rate limiter sweep removed %d expired entries", removed)
			}
		})
		if err != nil {
			return err
		}
	}

	// Daily at 4 AM: purge expired announcements.
	_, err := cm.cron.AddFunc("0 4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		purged, err := cm.announcements.PurgeExpired(ctx)
		if err != nil {
			cm.logger.Printf("❌ Failed to purge expired announcements: %v", err)
			return
		}
		if purged > 0 {
			cm.logger.Printf("✅ Purged %d expired announcements", purged)
		}
	})
	if err != nil {
		return err
	}

	cm.logger.Println("✅ Cron jobs configured")
	return nil
}

// Start begins executing scheduled jobs
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop halts all scheduled jobs
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
}

package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/DC111-ui/hss-storage-platform/config"
	bookingRepo "github.com/DC111-ui/hss-storage-platform/database/repository/booking"
)

const TypeAuditPurge = "audit:purge"

// InitRetentionWorker runs the audit retention sweep in background. It needs
// Redis for the task queue; when REDIS_ADDR is unset the worker stays off
// and the audit trail simply grows, which is fine for a demo deployment.
func InitRetentionWorker(audit bookingRepo.AuditRepository) {
	if config.AppConfig.RedisAddr == "" {
		log.Println("[RetentionWorker] Redis not configured, retention sweep disabled")
		return
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAuditPurge, handleAuditPurge(audit))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 24h", asynq.NewTask(TypeAuditPurge, nil)); err != nil {
		log.Printf("[RetentionWorker] failed to register purge schedule: %v", err)
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[RetentionWorker] scheduler stopped: %v", err)
		}
	}()
	go func() {
		log.Println("[RetentionWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[RetentionWorker] worker stopped: %v", err)
		}
	}()
}

func handleAuditPurge(audit bookingRepo.AuditRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		days := config.AppConfig.AuditRetentionDays
		if days <= 0 {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -days)
		purged, err := audit.PurgeOlderThan(ctx, cutoff)
		if err != nil {
			log.Printf("[RetentionWorker] purge failed: %v", err)
			return err
		}
		if purged > 0 {
			log.Printf("[RetentionWorker] purged %d audit events older than %d days", purged, days)
		}
		return nil
	}
}

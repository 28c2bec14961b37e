package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartHealthMonitor pings the database on the given interval and logs
// failures together with pool usage. The goroutine stops when ctx is done.
func StartHealthMonitor(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := db.PingContext(ctx); err != nil {
					log.Error("database ping failed", zap.Error(err))
					continue
				}
				s := db.Stats()
				log.Debug("database pool healthy",
					zap.Int("open", s.OpenConnections),
					zap.Int("in_use", s.InUse),
					zap.Int("idle", s.Idle),
				)
			}
		}
	}()
}

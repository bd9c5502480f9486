package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/edujiin-api/internal/models"
	"gorm.io/gorm"
)

const defaultRetentionDays = 30

// StartCleanup purges system_logs older than retentionDays once at start and
// then every 24h until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done <-chan struct{}) {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour

	go func() {
		purge := func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			deleted, err := PurgeLogs(ctx, db, time.Now().Add(-retention))
			switch {
			case err != nil:
				slog.Warn("log cleanup failed", "error", err)
			case deleted > 0:
				slog.Info("log cleanup completed", "deleted", deleted, "retention_days", retentionDays)
			}
		}

		purge()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purge()
			case <-done:
				return
			}
		}
	}()
}

// PurgeLogs deletes log rows recorded before cutoff and reports how many went.
func PurgeLogs(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return res.RowsAffected, res.Error
}

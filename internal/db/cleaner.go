package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartExpiredTokenCleaner deletes long-expired legacy access tokens with interval.
// Tokens are kept for a retention window past expiry so a late visitor still
// gets an "expired" page instead of a generic not-found.
func StartExpiredTokenCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
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
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM legacy_access_tokens
                     WHERE expires_at IS NOT NULL
                       AND expires_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean expired legacy tokens", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned expired legacy tokens", zap.Int64("removed", rows))
				}
			}
		}
	}()
}

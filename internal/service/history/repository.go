// Package history stores one snapshot row per analysis run so the next run
// can report subscriber/view deltas against the previous one. It is optional:
// a nil *Repository disables history without touching calling code.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/kapu/creator-pulse-go/internal/domain"
	"github.com/kapu/creator-pulse-go/internal/service/database"
	"github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(postgres *database.PostgresService, logger *zap.Logger) *Repository {
	return &Repository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS channel_snapshots (
	id BIGSERIAL PRIMARY KEY,
	platform TEXT NOT NULL,
	target_id TEXT NOT NULL,
	display_name TEXT NOT NULL,
	subscribers BIGINT NOT NULL,
	total_views BIGINT NOT NULL,
	total_items BIGINT NOT NULL,
	analyzed_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the snapshot table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return errors.NewPersistenceError("failed to create snapshot table", "migrate", "channel_snapshots", err)
	}
	return nil
}

// RecordChannelSnapshot inserts the current run's top-level stats.
func (r *Repository) RecordChannelSnapshot(ctx context.Context, platform, targetID, name string, subscribers, views, items int64, analyzedAt time.Time) error {
	query := `
		INSERT INTO channel_snapshots
			(platform, target_id, display_name, subscribers, total_views, total_items, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := r.db.ExecContext(ctx, query,
		platform, targetID, name, subscribers, views, items, analyzedAt); err != nil {
		return errors.NewPersistenceError("failed to record snapshot", "insert", targetID, err)
	}

	r.logger.Debug("Snapshot recorded",
		zap.String("platform", platform),
		zap.String("target", targetID))
	return nil
}

// DeltaSince returns the change versus the most recent snapshot taken before
// the given instant. A missing previous snapshot is not an error.
func (r *Repository) DeltaSince(ctx context.Context, platform, targetID string, subscribers, views, items int64, before time.Time) (*domain.HistoryDelta, error) {
	query := `
		SELECT subscribers, total_views, total_items, analyzed_at
		FROM channel_snapshots
		WHERE platform = $1 AND target_id = $2 AND analyzed_at < $3
		ORDER BY analyzed_at DESC
		LIMIT 1
	`

	var (
		prevSubs  int64
		prevViews int64
		prevItems int64
		prevAt    time.Time
	)

	err := r.db.QueryRowContext(ctx, query, platform, targetID, before).
		Scan(&prevSubs, &prevViews, &prevItems, &prevAt)
	if err == sql.ErrNoRows {
		return &domain.HistoryDelta{HasPreviousRecord: false}, nil
	}
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load previous snapshot", "select", targetID, err)
	}

	return &domain.HistoryDelta{
		PreviousAt:        prevAt,
		SubscriberChange:  subscribers - prevSubs,
		ViewChange:        views - prevViews,
		VideoCountChange:  items - prevItems,
		HasPreviousRecord: true,
	}, nil
}

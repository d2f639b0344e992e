package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// AlertRepository persists the immutable SLA alert log used for dedup.
type AlertRepository interface {
	// Exists reports whether an alert of this kind was recorded for the
	// ticket within the dedup window.
	Exists(ctx context.Context, ticketID string, kind domain.AlertKind) (bool, error)
	// Record inserts one alert record. Concurrent calls for the same key may
	// both succeed; duplicate rows within a window are tolerated (see the
	// overlap note on the monitor).
	Record(ctx context.Context, record *domain.AlertRecord) error
}

type alertRepository struct {
	pool   *pgxpool.Pool
	cache  *DedupCache
	window time.Duration
	logger *zap.Logger
}

// NewAlertRepository instantiates repository. The cache may be nil.
func NewAlertRepository(pool *pgxpool.Pool, cache *DedupCache, window time.Duration, logger *zap.Logger) AlertRepository {
	return &alertRepository{pool: pool, cache: cache, window: window, logger: logger}
}

func (r *alertRepository) Exists(ctx context.Context, ticketID string, kind domain.AlertKind) (bool, error) {
	seen, err := r.cache.Seen(ctx, ticketID, kind)
	if err != nil {
		r.logger.Warn("dedup cache read failed; falling back to postgres", zap.Error(err))
	} else if seen {
		return true, nil
	}

	const query = `
        SELECT EXISTS (
            SELECT 1 FROM sla_alerts
            WHERE ticket_id=$1 AND kind=$2 AND created_at > $3
        )`
	var exists bool
	cutoff := time.Now().Add(-r.window)
	if err := r.pool.QueryRow(ctx, query, ticketID, kind, cutoff).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *alertRepository) Record(ctx context.Context, record *domain.AlertRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	details, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("marshal alert details: %w", err)
	}

	const query = `
        INSERT INTO sla_alerts (id, ticket_id, kind, details)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at`
	if err := r.pool.QueryRow(ctx, query, record.ID, record.TicketID, record.Kind, details).Scan(&record.CreatedAt); err != nil {
		return err
	}

	if err := r.cache.Mark(ctx, record.TicketID, record.Kind); err != nil {
		r.logger.Warn("dedup cache write failed", zap.Error(err))
	}
	return nil
}

package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// Keys in the sla_config table. Unknown keys are ignored on read.
const (
	configKeyWarningRatio  = "warning_ratio"
	configKeyCriticalRatio = "critical_ratio"

	configKeyHoursPrefix = "resolution_hours_"
)

// SLAConfigRepository reads persisted SLA tuning. A failed read returns an
// error; the caller decides to fall back to compiled-in or environment
// defaults.
type SLAConfigRepository interface {
	LoadThresholds(ctx context.Context, defaults domain.SLAThresholds) (domain.SLAThresholds, error)
	LoadResolutionHours(ctx context.Context, defaults map[domain.TicketPriority]int) (map[domain.TicketPriority]int, error)
}

type slaConfigRepository struct {
	pool *pgxpool.Pool
}

// NewSLAConfigRepository instantiates repository.
func NewSLAConfigRepository(pool *pgxpool.Pool) SLAConfigRepository {
	return &slaConfigRepository{pool: pool}
}

// LoadThresholds overlays persisted ratio values onto the given defaults.
// Keys that are absent or unparsable keep the default.
func (r *slaConfigRepository) LoadThresholds(ctx context.Context, defaults domain.SLAThresholds) (domain.SLAThresholds, error) {
	values, err := r.loadAll(ctx)
	if err != nil {
		return defaults, err
	}

	thresholds := defaults
	if raw, ok := values[configKeyWarningRatio]; ok {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 && parsed < 1 {
			thresholds.WarningRatio = parsed
		}
	}
	if raw, ok := values[configKeyCriticalRatio]; ok {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 && parsed < 1 {
			thresholds.CriticalRatio = parsed
		}
	}
	return thresholds, nil
}

// LoadResolutionHours overlays persisted per-priority resolution hours onto
// the given defaults.
func (r *slaConfigRepository) LoadResolutionHours(ctx context.Context, defaults map[domain.TicketPriority]int) (map[domain.TicketPriority]int, error) {
	values, err := r.loadAll(ctx)
	if err != nil {
		return defaults, err
	}

	hours := make(map[domain.TicketPriority]int, len(defaults))
	for priority, fallback := range defaults {
		hours[priority] = fallback
	}
	for priority := range hours {
		raw, ok := values[resolutionHoursKey(priority)]
		if !ok {
			continue
		}
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			hours[priority] = parsed
		}
	}
	return hours, nil
}

func resolutionHoursKey(priority domain.TicketPriority) string {
	return configKeyHoursPrefix + strings.ToLower(string(priority))
}

func (r *slaConfigRepository) loadAll(ctx context.Context) (map[string]string, error) {
	const query = `SELECT key, value FROM sla_config`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

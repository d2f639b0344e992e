package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sla-monitor", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())

	assert.Equal(t, 900000, cfg.SLA.PollIntervalMS)
	assert.Equal(t, 15*time.Minute, cfg.SLA.PollInterval())
	assert.Equal(t, 24*time.Hour, cfg.SLA.DedupWindow())
	assert.Equal(t, domain.DefaultSLAThresholds(), cfg.SLA.Thresholds())
	assert.Equal(t, domain.DefaultResolutionHours(), cfg.SLA.ResolutionHours)
	assert.Equal(t, 9, cfg.SLA.BusinessDayStart)
	assert.Equal(t, 17, cfg.SLA.BusinessDayEnd)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SLA_POLL_INTERVAL_MS", "60000")
	t.Setenv("SLA_WARNING_RATIO", "0.7")
	t.Setenv("SLA_CRITICAL_RATIO", "0.9")
	t.Setenv("SLA_HOURS_CRITICAL", "2")
	t.Setenv("SLA_DEDUP_WINDOW_HOURS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.SLA.PollInterval())
	assert.Equal(t, 0.7, cfg.SLA.WarningRatio)
	assert.Equal(t, 0.9, cfg.SLA.CriticalRatio)
	assert.Equal(t, 2, cfg.SLA.ResolutionHours[domain.TicketPriorityCritical])
	assert.Equal(t, 12*time.Hour, cfg.SLA.DedupWindow())
}

func TestLoadUnparsableValuesKeepDefaults(t *testing.T) {
	t.Setenv("SLA_WARNING_RATIO", "not-a-number")
	t.Setenv("SLA_HOURS_HIGH", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.SLA.WarningRatio)
	assert.Equal(t, 24, cfg.SLA.ResolutionHours[domain.TicketPriorityHigh])
}

func TestLoadRejectsBadPollInterval(t *testing.T) {
	t.Setenv("SLA_POLL_INTERVAL_MS", "-5")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadBusinessWindow(t *testing.T) {
	t.Setenv("SLA_BUSINESS_DAY_START_HOUR", "18")
	t.Setenv("SLA_BUSINESS_DAY_END_HOUR", "9")

	_, err := Load()
	require.Error(t, err)
}

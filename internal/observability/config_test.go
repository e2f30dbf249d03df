package observability

import (
	"testing"

	"github.com/smallbiznis/landedcost/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "")

	cfg := LoadConfig(config.Config{Environment: "development", AppVersion: "1.2.0"})

	assert.Equal(t, "landedcost", cfg.ServiceName)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.InDelta(t, 0.1, cfg.OtelSamplingRatio, 1e-9)
	assert.True(t, cfg.Debug())
	assert.Contains(t, cfg.QuietRoutes, "/health")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DEPLOYMENT_ENV", "production")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_SAMPLING_RATIO", "1.5")

	cfg := LoadConfig(config.Config{AppName: "shop", Environment: "development"})

	assert.Equal(t, "shop", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.OtelEnabled)
	assert.InDelta(t, 0.1, cfg.OtelSamplingRatio, 1e-9)
	assert.False(t, cfg.Debug())
}

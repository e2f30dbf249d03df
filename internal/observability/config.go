package observability

import (
	"os"
	"strconv"
	"strings"

	"github.com/smallbiznis/landedcost/internal/config"
)

const (
	defaultServiceName   = "landedcost"
	defaultSamplingRatio = 0.1
)

// Config is the observability view of the process: how to log, where to
// export traces and metrics, and which routes stay out of the request log.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64

	// QuietRoutes are served without request logging.
	QuietRoutes []string
}

// LoadConfig layers OTEL_* and LOG_* environment overrides on top of the
// application config.
func LoadConfig(cfg config.Config) Config {
	env := envReader(os.Getenv)

	out := Config{
		ServiceName:          firstNonEmpty(cfg.AppName, defaultServiceName),
		Environment:          env.str("DEPLOYMENT_ENV", cfg.Environment),
		Version:              env.str("SERVICE_VERSION", cfg.AppVersion),
		LogLevel:             strings.ToLower(env.str("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(env.str("LOG_FORMAT", "")),
		OtelEnabled:          env.boolean("OTEL_ENABLED", false),
		OtelExporterEndpoint: env.str("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint),
		OtelExporterProtocol: strings.ToLower(env.str("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
		OtelSamplingRatio:    env.ratio("OTEL_SAMPLING_RATIO", defaultSamplingRatio),
		QuietRoutes:          []string{"/health", "/metrics"},
	}
	if out.LogFormat == "" {
		out.LogFormat = "json"
		if isDevEnv(out.Environment) {
			out.LogFormat = "console"
		}
	}
	return out
}

// Debug enables development logging with stack traces.
func (c Config) Debug() bool {
	return strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") || isDevEnv(c.Environment)
}

func isDevEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type envReader func(string) string

func (e envReader) str(key, def string) string {
	return firstNonEmpty(e(key), def)
}

func (e envReader) boolean(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(e(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

// ratio parses a sampling ratio, falling back when it is outside [0, 1].
func (e envReader) ratio(key string, def float64) float64 {
	raw := strings.TrimSpace(e(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return def
	}
	return parsed
}

package events

import (
	"context"

	"github.com/smallbiznis/landedcost/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("events",
	fx.Provide(NewPublisher),
)

// NewPublisher returns a Kafka-backed publisher when brokers are configured
// and a no-op publisher otherwise.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) Publisher {
	if !cfg.Kafka.Enabled() {
		log.Info("kafka not configured, catalog events disabled")
		return NoopPublisher{}
	}

	pub := NewKafkaPublisher(NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	log.Info("kafka publisher ready",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
	)
	return pub
}

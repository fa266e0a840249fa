package cli

import (
	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/minio"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	"github.com/turtacn/PolyGraph-Intelligence/internal/interfaces/http/handlers"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Infrastructure wiring shared by the commands
// ─────────────────────────────────────────────────────────────────────────────

// infra owns the connections a command opens and closes them in reverse
// order.
type infra struct {
	cfg    *config.Config
	logger logging.Logger

	minio    *minio.MinIOClient
	minioCfg config.MinIOConfig
	checkers []handlers.HealthChecker
	closers  []func() error
}

func newInfra(cfg *config.Config, logger logging.Logger) *infra {
	return &infra{cfg: cfg, logger: logger}
}

func (in *infra) onClose(fn func() error) {
	in.closers = append(in.closers, fn)
}

// Close releases every connection.  Errors are logged, not returned.
func (in *infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil {
			in.logger.Warn("failed to close dependency", logging.Err(err))
		}
	}
	in.closers = nil
}

// recordStore opens the record directory (fs) or object prefix (minio) at
// location on the backend storage selects.  A MinIO client is reused while
// its settings stay the same.
func (in *infra) recordStore(storage config.StorageConfig, location string) (record.Store, error) {
	switch storage.Backend {
	case "", "fs":
		return record.NewFileStore(location, in.logger), nil
	case "minio":
		if in.minio == nil || in.minioCfg != storage.MinIO {
			client, err := minio.NewMinIOClient(storage.MinIO, in.logger)
			if err != nil {
				return nil, err
			}
			in.minio, in.minioCfg = client, storage.MinIO
			in.checkers = append(in.checkers, client)
			in.onClose(client.Close)
		}
		return minio.NewRecordStore(in.minio, location, in.logger), nil
	default:
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeValidation, "unknown storage backend %q", storage.Backend)
	}
}

// metrics returns the collector and featurization metrics, or nils when
// metrics are disabled.
func (in *infra) metrics() (prometheus.MetricsCollector, *prometheus.FeaturizeMetrics, error) {
	if !in.cfg.Metrics.Enabled {
		return nil, nil, nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfigFrom(in.cfg.Metrics), in.logger)
	if err != nil {
		return nil, nil, err
	}
	return collector, prometheus.NewFeaturizeMetrics(collector), nil
}

// featureCache connects to Redis when enabled.
func (in *infra) featureCache() (*redis.FeatureCache, error) {
	if !in.cfg.Redis.Enabled {
		return nil, nil
	}
	client, err := redis.NewClient(in.cfg.Redis, in.logger)
	if err != nil {
		return nil, err
	}
	in.checkers = append(in.checkers, client)
	in.onClose(client.Close)
	return redis.NewFeatureCache(client, in.logger,
		redis.WithPrefix(in.cfg.Redis.Prefix),
		redis.WithTTL(in.cfg.Redis.TTL),
	), nil
}

// eventPublisher opens a Kafka producer when enabled.
func (in *infra) eventPublisher() (*kafka.EventPublisher, error) {
	if !in.cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := kafka.NewProducer(in.cfg.Kafka, in.logger)
	if err != nil {
		return nil, err
	}
	in.onClose(producer.Close)
	return kafka.NewEventPublisher(producer, in.cfg.Kafka.TopicFeaturized, in.cfg.Kafka.TopicFailed, in.logger), nil
}

//Personal.AI order the ending

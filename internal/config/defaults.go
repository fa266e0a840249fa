// Package config provides configuration loading, defaults, and validation for
// the PolyGraph-Intelligence pipeline.
package config

import (
	"math"
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRawDir            = "datasets/raw"
	DefaultOutputDir         = "datasets/interim"
	DefaultFeatureSetIndex   = 1
	DefaultWorkers           = 4
	DefaultCoplanarTolerance = 1e-6
	DefaultRecordTimeout     = 30 * time.Second

	DefaultGaussianSigma = 0.2
	DefaultGaussianBins  = 10

	DefaultDatasetYVal = "y"
	DefaultDatasetSeed = 42

	DefaultStorageBackend = "fs"
	DefaultMinIOEndpoint  = "localhost:9000"
	DefaultMinIOBucket    = "polyhedra"

	DefaultNeo4jURI       = "bolt://localhost:7687"
	DefaultNeo4jUser      = "neo4j"
	DefaultNeo4jDatabase  = "neo4j"
	DefaultNeo4jPoolSize  = 50
	DefaultNeo4jTimeout   = 10 * time.Second
	DefaultNeo4jBatchSize = 500

	DefaultRedisAddr     = "localhost:6379"
	DefaultRedisPoolSize = 10
	DefaultRedisPrefix   = "polygraph:features:"
	DefaultRedisTTL      = 24 * time.Hour

	DefaultKafkaBroker          = "localhost:9092"
	DefaultKafkaTopicFeaturized = "polygraph.record.featurized"
	DefaultKafkaTopicFailed     = "polygraph.record.failed"
	DefaultKafkaRequiredAcks    = -1
	DefaultKafkaCompression     = "snappy"
	DefaultKafkaBatchTimeout    = 10 * time.Millisecond

	DefaultMetricsNamespace = "polygraph"
	DefaultMetricsSubsystem = "featurize"

	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 15 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second
)

// Gaussian dihedral range [π/4, π].
var (
	DefaultGaussianMin = math.Pi / 4
	DefaultGaussianMax = math.Pi
)

// DefaultSideCategories are the face side counts with a dedicated bin.
func DefaultSideCategories() []int {
	return []int{3, 4, 5, 6, 7, 8}
}

// registerDefaults seeds viper with every default so that environment
// variables bind to keys that are absent from the config file, and so that
// boolean defaults survive unmarshalling.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("featurize.raw_dir", DefaultRawDir)
	v.SetDefault("featurize.output_dir", DefaultOutputDir)
	v.SetDefault("featurize.feature_set_index", DefaultFeatureSetIndex)
	v.SetDefault("featurize.workers", DefaultWorkers)
	v.SetDefault("featurize.overwrite", true)
	v.SetDefault("featurize.coplanar_tolerance", DefaultCoplanarTolerance)
	v.SetDefault("featurize.record_timeout", DefaultRecordTimeout)

	v.SetDefault("encoding.side_categories", DefaultSideCategories())
	v.SetDefault("encoding.gaussian.min", DefaultGaussianMin)
	v.SetDefault("encoding.gaussian.max", DefaultGaussianMax)
	v.SetDefault("encoding.gaussian.sigma", DefaultGaussianSigma)
	v.SetDefault("encoding.gaussian.bins", DefaultGaussianBins)

	v.SetDefault("target.kind", "")

	v.SetDefault("dataset.dir", DefaultOutputDir)
	v.SetDefault("dataset.y_val", DefaultDatasetYVal)
	v.SetDefault("dataset.max_entries", 0)
	v.SetDefault("dataset.seed", DefaultDatasetSeed)

	v.SetDefault("coordination.dir", "")

	v.SetDefault("storage.backend", DefaultStorageBackend)
	v.SetDefault("storage.minio.endpoint", DefaultMinIOEndpoint)
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.use_ssl", false)
	v.SetDefault("storage.minio.region", "")
	v.SetDefault("storage.minio.bucket", DefaultMinIOBucket)

	v.SetDefault("neo4j.uri", DefaultNeo4jURI)
	v.SetDefault("neo4j.user", DefaultNeo4jUser)
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", DefaultNeo4jDatabase)
	v.SetDefault("neo4j.max_connection_pool_size", DefaultNeo4jPoolSize)
	v.SetDefault("neo4j.connection_timeout", DefaultNeo4jTimeout)
	v.SetDefault("neo4j.materials_dir", "")
	v.SetDefault("neo4j.batch_size", DefaultNeo4jBatchSize)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", DefaultRedisPoolSize)
	v.SetDefault("redis.prefix", DefaultRedisPrefix)
	v.SetDefault("redis.ttl", DefaultRedisTTL)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.topic_featurized", DefaultKafkaTopicFeaturized)
	v.SetDefault("kafka.topic_failed", DefaultKafkaTopicFailed)
	v.SetDefault("kafka.required_acks", DefaultKafkaRequiredAcks)
	v.SetDefault("kafka.compression", DefaultKafkaCompression)
	v.SetDefault("kafka.batch_timeout", DefaultKafkaBatchTimeout)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.subsystem", DefaultMetricsSubsystem)

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)
}

// ApplyDefaults fills every zero-value field in cfg with the pipeline default.
// Fields that are already set are left unchanged.  Boolean switches cannot be
// told apart from an explicit false and are only defaulted through viper.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Featurize ─────────────────────────────────────────────────────────────
	if cfg.Featurize.RawDir == "" {
		cfg.Featurize.RawDir = DefaultRawDir
	}
	if cfg.Featurize.OutputDir == "" {
		cfg.Featurize.OutputDir = DefaultOutputDir
	}
	if cfg.Featurize.Workers == 0 {
		cfg.Featurize.Workers = DefaultWorkers
	}
	if cfg.Featurize.CoplanarTolerance == 0 {
		cfg.Featurize.CoplanarTolerance = DefaultCoplanarTolerance
	}
	if cfg.Featurize.RecordTimeout == 0 {
		cfg.Featurize.RecordTimeout = DefaultRecordTimeout
	}

	// ── Encoding ──────────────────────────────────────────────────────────────
	if len(cfg.Encoding.SideCategories) == 0 {
		cfg.Encoding.SideCategories = DefaultSideCategories()
	}
	g := &cfg.Encoding.Gaussian
	if g.Min == 0 && g.Max == 0 {
		g.Min, g.Max = DefaultGaussianMin, DefaultGaussianMax
	}
	if g.Sigma == 0 {
		g.Sigma = DefaultGaussianSigma
	}
	if g.Bins == 0 {
		g.Bins = DefaultGaussianBins
	}

	// ── Dataset ───────────────────────────────────────────────────────────────
	if cfg.Dataset.Dir == "" {
		cfg.Dataset.Dir = cfg.Featurize.OutputDir
	}
	if cfg.Dataset.YVal == "" {
		cfg.Dataset.YVal = DefaultDatasetYVal
	}
	if cfg.Dataset.Seed == 0 {
		cfg.Dataset.Seed = DefaultDatasetSeed
	}

	// ── Storage ───────────────────────────────────────────────────────────────
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.MinIO.Endpoint == "" {
		cfg.Storage.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.Storage.MinIO.Bucket == "" {
		cfg.Storage.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Neo4j ─────────────────────────────────────────────────────────────────
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.User == "" {
		cfg.Neo4j.User = DefaultNeo4jUser
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = DefaultNeo4jDatabase
	}
	if cfg.Neo4j.MaxConnectionPoolSize == 0 {
		cfg.Neo4j.MaxConnectionPoolSize = DefaultNeo4jPoolSize
	}
	if cfg.Neo4j.ConnectionTimeout == 0 {
		cfg.Neo4j.ConnectionTimeout = DefaultNeo4jTimeout
	}
	if cfg.Neo4j.BatchSize == 0 {
		cfg.Neo4j.BatchSize = DefaultNeo4jBatchSize
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = DefaultRedisPrefix
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = DefaultRedisTTL
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.TopicFeaturized == "" {
		cfg.Kafka.TopicFeaturized = DefaultKafkaTopicFeaturized
	}
	if cfg.Kafka.TopicFailed == "" {
		cfg.Kafka.TopicFailed = DefaultKafkaTopicFailed
	}
	if cfg.Kafka.Compression == "" {
		cfg.Kafka.Compression = DefaultKafkaCompression
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
}

// NewDefaultConfig returns a Config populated entirely from defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Featurize.FeatureSetIndex = DefaultFeatureSetIndex
	cfg.Featurize.Overwrite = true
	cfg.Metrics.Enabled = true
	return cfg
}

//Personal.AI order the ending

// Package config defines all configuration structures for the PolyGraph-Intelligence
// pipeline.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// FeaturizeConfig drives the batch featurization run.
type FeaturizeConfig struct {
	RawDir            string        `mapstructure:"raw_dir"`
	OutputDir         string        `mapstructure:"output_dir"`
	FeatureSetIndex   int           `mapstructure:"feature_set_index"`
	Workers           int           `mapstructure:"workers"`
	Overwrite         bool          `mapstructure:"overwrite"`
	CoplanarTolerance float64       `mapstructure:"coplanar_tolerance"`
	RecordTimeout     time.Duration `mapstructure:"record_timeout"`
}

// GaussianConfig parameterises the Gaussian bin encoder for dihedral angles.
type GaussianConfig struct {
	Min   float64 `mapstructure:"min"`
	Max   float64 `mapstructure:"max"`
	Sigma float64 `mapstructure:"sigma"`
	Bins  int     `mapstructure:"bins"`
}

// EncodingConfig holds the encoder parameters shared by all feature sets.
type EncodingConfig struct {
	SideCategories []int          `mapstructure:"side_categories"`
	Gaussian       GaussianConfig `mapstructure:"gaussian"`
}

// TargetConfig selects the scalar target.  An empty Kind keeps the feature
// set's own target.
type TargetConfig struct {
	Kind string `mapstructure:"kind"` // "" | "energy_per_node" | "three_body_energy"
}

// DatasetConfig describes the featurized dataset consumed by training code.
type DatasetConfig struct {
	Dir        string `mapstructure:"dir"`
	YVal       string `mapstructure:"y_val"`
	MaxEntries int    `mapstructure:"max_entries"`
	Seed       int64  `mapstructure:"seed"`
}

// CoordinationConfig points at the coordination-geometry definition files.
type CoordinationConfig struct {
	Dir string `mapstructure:"dir"`
}

// MinIOConfig holds object-storage connection parameters.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Backend string      `mapstructure:"backend"` // "fs" | "minio"
	MinIO   MinIOConfig `mapstructure:"minio"`
}

// Neo4jConfig holds Neo4j connection parameters and graph population settings.
type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
	MaterialsDir          string        `mapstructure:"materials_dir"`
	BatchSize             int           `mapstructure:"batch_size"`
}

// RedisConfig holds feature-cache connection parameters.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// KafkaConfig holds featurization event publishing parameters.
type KafkaConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Brokers         []string      `mapstructure:"brokers"`
	TopicFeaturized string        `mapstructure:"topic_featurized"`
	TopicFailed     string        `mapstructure:"topic_failed"`
	RequiredAcks    int           `mapstructure:"required_acks"`
	Compression     string        `mapstructure:"compression"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

// ServerConfig holds HTTP server tunables for `polygraph serve`.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Log          logging.LogConfig  `mapstructure:"log"`
	Featurize    FeaturizeConfig    `mapstructure:"featurize"`
	Encoding     EncodingConfig     `mapstructure:"encoding"`
	Target       TargetConfig       `mapstructure:"target"`
	Dataset      DatasetConfig      `mapstructure:"dataset"`
	Coordination CoordinationConfig `mapstructure:"coordination"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Neo4j        Neo4jConfig        `mapstructure:"neo4j"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	Server       ServerConfig       `mapstructure:"server"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate checks the encoder parameters.  Failures carry ErrCodeEncodingConfig
// and are fatal at startup.
func (e EncodingConfig) Validate() error {
	if len(e.SideCategories) == 0 {
		return pkgerrors.New(pkgerrors.ErrCodeEncodingConfig, "encoding.side_categories must not be empty")
	}
	seen := make(map[int]struct{}, len(e.SideCategories))
	for _, c := range e.SideCategories {
		if _, dup := seen[c]; dup {
			return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "encoding.side_categories has duplicate %d", c)
		}
		seen[c] = struct{}{}
	}
	g := e.Gaussian
	if g.Bins <= 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "encoding.gaussian.bins must be > 0, got %d", g.Bins)
	}
	if g.Sigma <= 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "encoding.gaussian.sigma must be > 0, got %g", g.Sigma)
	}
	if g.Max < g.Min {
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "encoding.gaussian.max %g is below min %g", g.Max, g.Min)
	}
	return nil
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers treat any error as fatal.
func (c *Config) Validate() error {
	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Featurize
	if c.Featurize.FeatureSetIndex < 0 {
		return fmt.Errorf("config: featurize.feature_set_index must be ≥ 0, got %d", c.Featurize.FeatureSetIndex)
	}
	if c.Featurize.Workers < 1 {
		return fmt.Errorf("config: featurize.workers must be ≥ 1, got %d", c.Featurize.Workers)
	}
	if c.Featurize.CoplanarTolerance <= 0 || c.Featurize.CoplanarTolerance >= 1 {
		return fmt.Errorf("config: featurize.coplanar_tolerance %g is out of range (0, 1)", c.Featurize.CoplanarTolerance)
	}

	// Encoding
	if err := c.Encoding.Validate(); err != nil {
		return err
	}

	// Target
	switch c.Target.Kind {
	case "", "energy_per_node", "three_body_energy":
	default:
		return pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig,
			"target.kind %q is invalid; expected energy_per_node|three_body_energy", c.Target.Kind)
	}

	// Dataset
	if c.Dataset.MaxEntries < 0 {
		return fmt.Errorf("config: dataset.max_entries must be ≥ 0, got %d", c.Dataset.MaxEntries)
	}

	// Storage
	switch c.Storage.Backend {
	case "fs":
	case "minio":
		if c.Storage.MinIO.Endpoint == "" {
			return fmt.Errorf("config: storage.minio.endpoint is required for the minio backend")
		}
		if c.Storage.MinIO.Bucket == "" {
			return fmt.Errorf("config: storage.minio.bucket is required for the minio backend")
		}
	default:
		return fmt.Errorf("config: storage.backend %q is invalid; expected fs|minio", c.Storage.Backend)
	}

	// Neo4j
	if c.Neo4j.BatchSize < 1 {
		return fmt.Errorf("config: neo4j.batch_size must be ≥ 1, got %d", c.Neo4j.BatchSize)
	}

	// Redis
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}

	// Kafka
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
	}

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	return nil
}

//Personal.AI order the ending

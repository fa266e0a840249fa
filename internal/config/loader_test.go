package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

const validConfigYAML = `
log:
  level: debug
  format: console
featurize:
  raw_dir: /data/raw
  output_dir: /data/interim
  feature_set_index: 0
  workers: 8
  overwrite: false
encoding:
  side_categories: [3, 4, 5, 6]
  gaussian:
    min: 0.5
    max: 3.0
    sigma: 0.1
    bins: 12
dataset:
  y_val: energy
  max_entries: 100
storage:
  backend: minio
  minio:
    endpoint: "minio:9000"
    bucket: "poly"
neo4j:
  uri: "bolt://graph:7687"
  password: "secret"
server:
  port: 9090
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/data/raw", cfg.Featurize.RawDir)
	assert.Equal(t, 0, cfg.Featurize.FeatureSetIndex)
	assert.Equal(t, 8, cfg.Featurize.Workers)
	assert.False(t, cfg.Featurize.Overwrite)
	assert.Equal(t, []int{3, 4, 5, 6}, cfg.Encoding.SideCategories)
	assert.Equal(t, 12, cfg.Encoding.Gaussian.Bins)
	assert.Equal(t, "energy", cfg.Dataset.YVal)
	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults for untouched sections.
	assert.Equal(t, int64(DefaultDatasetSeed), cfg.Dataset.Seed)
	assert.Equal(t, DefaultNeo4jBatchSize, cfg.Neo4j.BatchSize)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load("non_existent_config.yaml")
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "invalid_yaml: ["))
	assert.ErrorIs(t, err, ErrConfigParseError)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "featurize:\n  workers: -3\n"))
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestLoad_EncodingFailureIsClassified(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "encoding:\n  gaussian:\n    bins: -1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigValidation)
	assert.True(t, pkgerrors.IsEncodingConfigError(err))
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("POLYGRAPH_FEATURIZE_WORKERS", "3")
	t.Setenv("POLYGRAPH_NEO4J_URI", "bolt://override:7687")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Featurize.Workers)
	assert.Equal(t, "bolt://override:7687", cfg.Neo4j.URI)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("POLYGRAPH_DATASET_SEED", "7")
	t.Setenv("POLYGRAPH_REDIS_ENABLED", "true")
	t.Setenv("POLYGRAPH_REDIS_TTL", "1h")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Dataset.Seed)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, DefaultFeatureSetIndex, cfg.Featurize.FeatureSetIndex)
}

func TestLoad_EmptyPathUsesEnv(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStorageBackend, cfg.Storage.Backend)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad("missing.yaml") })
}

func TestWatch_InvokesCallbackOnWrite(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	changed := make(chan *Config, 1)
	require.NoError(t, Watch(path, func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	}, nil))

	updated := []byte("featurize:\n  workers: 11\n")
	require.NoError(t, os.WriteFile(path, updated, 0o644))

	select {
	case cfg := <-changed:
		assert.Equal(t, 11, cfg.Featurize.Workers)
	case <-time.After(5 * time.Second):
		t.Skip("filesystem notification not delivered in this environment")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "absent.yaml"), func(*Config) {}, nil)
	assert.ErrorIs(t, err, ErrConfigParseError)
}

//Personal.AI order the ending

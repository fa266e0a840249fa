package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		encodingErr bool
	}{
		{"defaults", func(*Config) {}, false, false},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true, false},
		{"negative feature set", func(c *Config) { c.Featurize.FeatureSetIndex = -1 }, true, false},
		{"zero workers", func(c *Config) { c.Featurize.Workers = 0 }, true, false},
		{"tolerance too large", func(c *Config) { c.Featurize.CoplanarTolerance = 2 }, true, false},
		{"zero bins", func(c *Config) { c.Encoding.Gaussian.Bins = 0 }, true, true},
		{"negative sigma", func(c *Config) { c.Encoding.Gaussian.Sigma = -0.1 }, true, true},
		{"max below min", func(c *Config) { c.Encoding.Gaussian.Max = 0.1 }, true, true},
		{"empty categories", func(c *Config) { c.Encoding.SideCategories = nil }, true, true},
		{"duplicate categories", func(c *Config) { c.Encoding.SideCategories = []int{3, 3} }, true, true},
		{"single bin", func(c *Config) { c.Encoding.Gaussian.Bins = 1 }, false, false},
		{"min equals max", func(c *Config) { c.Encoding.Gaussian.Max = c.Encoding.Gaussian.Min }, false, false},
		{"unknown target", func(c *Config) { c.Target.Kind = "four_body" }, true, true},
		{"energy target", func(c *Config) { c.Target.Kind = "energy_per_node" }, false, false},
		{"negative max entries", func(c *Config) { c.Dataset.MaxEntries = -1 }, true, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }, true, false},
		{"minio without bucket", func(c *Config) { c.Storage.Backend = "minio"; c.Storage.MinIO.Bucket = "" }, true, false},
		{"minio ok", func(c *Config) { c.Storage.Backend = "minio" }, false, false},
		{"redis enabled without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, true, false},
		{"kafka enabled without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, true, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true, false},
		{"bad server mode", func(c *Config) { c.Server.Mode = "prod" }, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tc.encodingErr, pkgerrors.IsEncodingConfigError(err))
		})
	}
}

//Personal.AI order the ending

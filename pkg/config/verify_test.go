package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Listen = ":8080"
		cfg.Server.Timeout = 30 * time.Second
		cfg.Dashboard.SourceURL = "https://example.com/data.json"

		err := VerifyAgainstEmbeddedSchema(cfg)
		assert.NoError(t, err)
	})

	t.Run("missing listen", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Timeout = 30 * time.Second
		cfg.Dashboard.SourceURL = "https://example.com/data.json"

		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.listen is required")
	})

	t.Run("missing source url", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Listen = ":8080"
		cfg.Server.Timeout = 30 * time.Second

		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dashboard.source_url is required")
	})

	t.Run("extraction enabled needs timeout", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.Listen = ":8080"
		cfg.Server.Timeout = 30 * time.Second
		cfg.Dashboard.SourceURL = "https://example.com/data.json"
		cfg.Extraction.Enabled = true

		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extraction.timeout is required")
	})
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.NotEmpty(t, schema.Definitions)
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigWithDefaults(t *testing.T) {
	got := Config{}.WithDefaults()

	assert.Equal(t, DefaultQuery, got.Search.Query)
	assert.Equal(t, 15, got.Search.MaxResults)
	assert.Equal(t, "advanced", got.Search.Depth)
	assert.Equal(t, "day", got.Search.TimeRange)
	assert.Equal(t, "deepseek-chat", got.Model.Name)
	assert.Equal(t, "https://api.deepseek.com", got.Model.BaseURL)
	assert.Equal(t, 3000, got.Model.ContentLimit)
	assert.Equal(t, ":8501", got.Server.Addr)
	assert.Equal(t, "info", got.Log.Level)
	assert.Equal(t, "text", got.Log.Format)
	assert.Zero(t, got.HTTP.Timeout, "no timeout unless configured")
}

func TestConfigWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Timeout: 30 * time.Second},
		Search: SearchConfig{Query: "LLM funding", MaxResults: 5, Depth: "basic", TimeRange: "week"},
		Model:  ModelConfig{Name: "deepseek-reasoner", Temperature: 0.3, ContentLimit: 1000},
	}
	got := cfg.WithDefaults()

	assert.Equal(t, "LLM funding", got.Search.Query)
	assert.Equal(t, 5, got.Search.MaxResults)
	assert.Equal(t, "basic", got.Search.Depth)
	assert.Equal(t, "week", got.Search.TimeRange)
	assert.Equal(t, "deepseek-reasoner", got.Model.Name)
	assert.Equal(t, 0.3, got.Model.Temperature)
	assert.Equal(t, 1000, got.Model.ContentLimit)
	assert.Equal(t, 30*time.Second, got.HTTP.Timeout)
}

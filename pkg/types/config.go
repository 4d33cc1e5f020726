package types

import "time"

// HTTPConfig holds shared HTTP settings used by the search and model clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ai-newsdesk/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	// Query is the search query (default "最新实时的AI新闻").
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// MaxResults is the maximum number of results to request (default 15).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Depth is the search depth passed to the API: "basic" or "advanced".
	Depth string `json:"depth" yaml:"depth" mapstructure:"depth"`

	// TimeRange limits results by recency: "day", "week", "month" or "year".
	TimeRange string `json:"time_range" yaml:"time_range" mapstructure:"time_range"`
}

// ModelConfig holds settings for the classification model.
type ModelConfig struct {
	// Name is the chat model identifier (default "deepseek-chat").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// BaseURL is the OpenAI-compatible API root (default "https://api.deepseek.com").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Temperature is the sampling temperature (default 0).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// ContentLimit caps how many characters of page content are sent to the
	// model per item (default 3000).
	ContentLimit int `json:"content_limit" yaml:"content_limit" mapstructure:"content_limit"`
}

// ServerConfig holds settings for the browser UI server.
type ServerConfig struct {
	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for a newsdesk process.
type Config struct {
	HTTP   HTTPConfig   `json:"http" yaml:"http" mapstructure:"http"`
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Model  ModelConfig  `json:"model" yaml:"model" mapstructure:"model"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

const (
	DefaultQuery        = "最新实时的AI新闻"
	DefaultMaxResults   = 15
	DefaultDepth        = "advanced"
	DefaultTimeRange    = "day"
	DefaultModel        = "deepseek-chat"
	DefaultModelBaseURL = "https://api.deepseek.com"
	DefaultContentLimit = 3000
	DefaultAddr         = ":8501"
)

// WithDefaults returns a copy of c with zero-valued fields filled in.
func (c Config) WithDefaults() Config {
	if c.Search.Query == "" {
		c.Search.Query = DefaultQuery
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = DefaultMaxResults
	}
	if c.Search.Depth == "" {
		c.Search.Depth = DefaultDepth
	}
	if c.Search.TimeRange == "" {
		c.Search.TimeRange = DefaultTimeRange
	}
	if c.Model.Name == "" {
		c.Model.Name = DefaultModel
	}
	if c.Model.BaseURL == "" {
		c.Model.BaseURL = DefaultModelBaseURL
	}
	if c.Model.ContentLimit <= 0 {
		c.Model.ContentLimit = DefaultContentLimit
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	return c
}

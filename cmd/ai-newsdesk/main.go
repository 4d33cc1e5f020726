// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ai-newsdesk CLI. It serves the
// browser UI and runs headless research sweeps from the terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/ai-newsdesk/internal/logging"
	"github.com/pdiddy/ai-newsdesk/internal/secrets"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "ai-newsdesk/0.1"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// appConfig and logger are populated in PersistentPreRunE.
var (
	appConfig types.Config
	logger    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ai-newsdesk",
	Short: "Daily AI news research: search, classify, export",
	Long: `ai-newsdesk searches the web for the past day's AI news, asks a chat model
to keep only items with real research value, and writes a short Chinese
summary for each one. Results can be browsed in a local web page or written
to an Excel, Word, YAML or JSON file.

Use "serve" for the browser UI and "run" for a one-shot sweep in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.WithField("keys", keys).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./ai-newsdesk.yaml or ~/.config/ai-newsdesk/ai-newsdesk.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Duration("timeout", 0, "HTTP request timeout for API calls (0 means none)")
	pf.String("model", types.DefaultModel, "chat model name")
	pf.String("model-base-url", types.DefaultModelBaseURL, "OpenAI-compatible API root")
	pf.Int("max-results", types.DefaultMaxResults, "maximum number of search results per run")
	pf.String("time-range", types.DefaultTimeRange, "search recency window: day, week, month or year")
	pf.String("depth", types.DefaultDepth, "search depth: basic or advanced")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.format", pf.Lookup("log-format"))
	mustBind("http.timeout", pf.Lookup("timeout"))
	mustBind("model.name", pf.Lookup("model"))
	mustBind("model.base_url", pf.Lookup("model-base-url"))
	mustBind("search.max_results", pf.Lookup("max-results"))
	mustBind("search.time_range", pf.Lookup("time-range"))
	mustBind("search.depth", pf.Lookup("depth"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ai-newsdesk")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ai-newsdesk"))
		}
	}

	viper.SetEnvPrefix("AI_NEWSDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so AutomaticEnv can override keys
// that appear in neither a flag nor the config file.
func setDefaults() {
	viper.SetDefault("http.timeout", 0)
	viper.SetDefault("http.user_agent", defaultUserAgent)
	viper.SetDefault("search.query", types.DefaultQuery)
	viper.SetDefault("search.max_results", types.DefaultMaxResults)
	viper.SetDefault("search.depth", types.DefaultDepth)
	viper.SetDefault("search.time_range", types.DefaultTimeRange)
	viper.SetDefault("model.temperature", 0.0)
	viper.SetDefault("model.content_limit", types.DefaultContentLimit)
	viper.SetDefault("server.addr", types.DefaultAddr)
}

// loadConfig decodes viper's merged view (flags, env, file) into a Config
// and fills in defaults.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// credentials resolves the two API keys: explicit flag values first, then
// AI_NEWSDESK_TAVILY_API_KEY / AI_NEWSDESK_DEEPSEEK_API_KEY, then .secrets/.
func credentials(searchFlag, modelFlag string) secrets.Credentials {
	flags := secrets.Credentials{Search: searchFlag, Model: modelFlag}
	env := secrets.Credentials{
		Search: os.Getenv("AI_NEWSDESK_TAVILY_API_KEY"),
		Model:  os.Getenv("AI_NEWSDESK_DEEPSEEK_API_KEY"),
	}
	return flags.Merge(env).Merge(secrets.FromMap(loadedSecrets))
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

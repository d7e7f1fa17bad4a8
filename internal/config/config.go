// Package config loads maturiz settings from an optional YAML file, an
// optional .env file and MATURIZ_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/maturiz/internal/llm"
)

// Config is the resolved application configuration.
type Config struct {
	// DB is the SQLite path. Empty means the store default.
	DB  string     `mapstructure:"db"`
	Log LogConfig  `mapstructure:"log"`
	LLM llm.Config `mapstructure:"llm"`

	// LLMDiscovered is set when the provider came from a vendor API key
	// variable rather than explicit configuration.
	LLMDiscovered bool `mapstructure:"-"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit YAML file. It must exist when set.
	ConfigFile string

	// EnvFile is an explicit .env file. When empty, ./.env is loaded if
	// present. Variables already in the environment win.
	EnvFile string
}

// setting binds one config key to its environment variable and default.
type setting struct {
	key string
	env string
	def any
}

func settings() []setting {
	d := llm.DefaultConfig()
	return []setting{
		{"db", "MATURIZ_DB", ""},
		{"log.level", "MATURIZ_LOG_LEVEL", "info"},
		{"log.format", "MATURIZ_LOG_FORMAT", "console"},

		// Empty provider triggers key discovery.
		{"llm.provider", "MATURIZ_LLM_PROVIDER", ""},
		{"llm.timeout", "MATURIZ_LLM_TIMEOUT", d.Timeout},

		{"llm.anthropic.api_key", "MATURIZ_ANTHROPIC_API_KEY", ""},
		{"llm.anthropic.model", "MATURIZ_ANTHROPIC_MODEL", d.Anthropic.Model},
		{"llm.anthropic.base_url", "MATURIZ_ANTHROPIC_BASE_URL", ""},
		{"llm.openai.api_key", "MATURIZ_OPENAI_API_KEY", ""},
		{"llm.openai.model", "MATURIZ_OPENAI_MODEL", d.OpenAI.Model},
		{"llm.openai.base_url", "MATURIZ_OPENAI_BASE_URL", ""},
		{"llm.gemini.api_key", "MATURIZ_GEMINI_API_KEY", ""},
		{"llm.gemini.model", "MATURIZ_GEMINI_MODEL", d.Gemini.Model},
		{"llm.gemini.base_url", "MATURIZ_GEMINI_BASE_URL", ""},
		{"llm.openrouter.api_key", "MATURIZ_OPENROUTER_API_KEY", ""},
		{"llm.openrouter.model", "MATURIZ_OPENROUTER_MODEL", d.OpenRouter.Model},
		{"llm.openrouter.base_url", "MATURIZ_OPENROUTER_BASE_URL", ""},

		{"llm.retry.max_attempts", "MATURIZ_LLM_RETRY_MAX_ATTEMPTS", d.Retry.MaxAttempts},
		{"llm.retry.initial_wait", "", d.Retry.InitialWait},
		{"llm.retry.max_wait", "", d.Retry.MaxWait},
		{"llm.retry.multiplier", "", d.Retry.Multiplier},
	}
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	for _, s := range settings() {
		v.SetDefault(s.key, s.def)
		if s.env != "" {
			if err := v.BindEnv(s.key, s.env); err != nil {
				return nil, fmt.Errorf("bind %s: %w", s.env, err)
			}
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("maturiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.LLM.Provider == "" {
		if found, ok := llm.Discover(cfg.LLM); ok {
			cfg.LLM = found
			cfg.LLMDiscovered = true
		} else {
			cfg.LLM.Provider = llm.DefaultConfig().Provider
		}
	}

	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	return nil
}

// configDir is $XDG_CONFIG_HOME/maturiz, falling back to ~/.config/maturiz.
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "maturiz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "maturiz")
}

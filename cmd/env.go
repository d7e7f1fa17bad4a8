package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/config"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/llm"
	"github.com/abhisek/maturiz/internal/logging"
	"github.com/abhisek/maturiz/internal/store"
)

// env holds what every command needs: the resolved config, a logger and
// the open store.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// setup loads configuration, builds the logger and opens the store.
func setup(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: configFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath), zap.String("config", cfg.File))

	return &env{cfg: cfg, logger: logger, store: st}, nil
}

func (e *env) close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// enrichmentService builds the AI analysis service, or returns nil with a
// notice on stderr when no provider is usable. The caller closes it.
func (e *env) enrichmentService(ctx context.Context, logger *zap.Logger) *enrichment.Service {
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI analysis will be unavailable.")
		return nil
	}
	if e.cfg.LLMDiscovered {
		logger.Info("using discovered LLM provider", zap.String("provider", e.cfg.LLM.Provider))
	}

	ecfg := enrichment.DefaultConfig()
	if e.cfg.LLM.Timeout > 0 {
		ecfg.Timeout = e.cfg.LLM.Timeout
	}
	return enrichment.NewService(enrichment.New(provider, ecfg), logger)
}

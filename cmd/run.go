package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/cyberguard/internal/app"
	"github.com/abhisek/cyberguard/internal/config"
	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/diagnostic"
	"github.com/abhisek/cyberguard/internal/logging"
	"github.com/abhisek/cyberguard/internal/quiz"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// runApp loads config, opens the store, builds dependencies, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prefs := st.Preferences()
	themeFlag, _ := cmd.Flags().GetString("theme")
	theme.Apply(startTheme(ctx, logger, prefs, cfg.Theme, themeFlag != ""))

	catalog := content.Default()
	skipSplash, _ := cmd.Flags().GetBool("no-splash")

	opts := app.Options{
		Catalog:    catalog,
		Insights:   content.NewInsights(catalog.Insights, nil),
		Engine:     quiz.NewEngine(quiz.DefaultBank(), quiz.WithLogger(logger)),
		Runner:     newCollector(cfg, logger),
		Prefs:      prefs,
		Secure:     cfg.SecureTransport(),
		Logger:     logger,
		SkipSplash: skipSplash,
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("db", cfg.DBPath),
		zap.Bool("secure", opts.Secure),
	)
	return app.Run(opts)
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.New(logging.Config{
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
		Debug: debug,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func newCollector(cfg config.Config, logger *zap.Logger) *diagnostic.Collector {
	lookup := diagnostic.NewHTTPLookup(cfg.LookupURL,
		diagnostic.WithUserAgent(diagnostic.UserAgent(version)),
		diagnostic.WithLookupLogger(logger),
	)
	return diagnostic.NewCollector(
		diagnostic.HostEnvironment{Version: version},
		lookup,
		diagnostic.WithTimeout(cfg.LookupTimeout),
		diagnostic.WithMinLoading(cfg.MinLoading),
		diagnostic.WithLogger(logger),
	)
}

// startTheme picks the initial theme: an explicit flag wins, then the saved
// preference, then the configured default.
func startTheme(ctx context.Context, logger *zap.Logger, prefs store.PreferenceRepo, configured string, explicit bool) theme.Mode {
	fallback, err := theme.ParseMode(configured)
	if err != nil {
		fallback = theme.Dark
	}
	if explicit {
		return fallback
	}

	saved, err := prefs.Theme(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("load theme preference", zap.Error(err))
		}
		return fallback
	}
	mode, err := theme.ParseMode(saved)
	if err != nil {
		logger.Warn("ignoring saved theme", zap.String("theme", saved), zap.Error(err))
		return fallback
	}
	return mode
}

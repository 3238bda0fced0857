package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cyberguard",
	Short: "Cybersecurity awareness in your terminal",
	Long:  "CyberGuard: threat library, security quiz and a device/network exposure check for staying safe online.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides CYBERGUARD_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CYBERGUARD_DB env var)")
	rootCmd.PersistentFlags().String("theme", "", "Theme to start with: dark or light")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs")
	rootCmd.Flags().Bool("no-splash", false, "Skip the intro animation")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file, then env vars, then flags (highest
// priority), and fills default paths.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if t, _ := cmd.Flags().GetString("theme"); t != "" {
		cfg.Theme = t
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := config.ResolvePaths(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("resolve paths: %w", err)
	}
	return cfg, nil
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the saved theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.Dark), string(theme.Light)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		prefs := st.Preferences()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			saved, err := prefs.Theme(ctx)
			if errors.Is(err, store.ErrNotFound) {
				fmt.Fprintf(out, "%s (default)\n", cfg.Theme)
				return nil
			}
			if err != nil {
				return fmt.Errorf("load theme: %w", err)
			}
			fmt.Fprintln(out, saved)
			return nil
		}

		mode, err := theme.ParseMode(args[0])
		if err != nil {
			return err
		}
		if err := prefs.SetTheme(ctx, string(mode)); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		fmt.Fprintf(out, "Theme set to %s.\n", mode)
		return nil
	},
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/diagnostic"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the device and network diagnostic without the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		// No spinner to keep on screen here.
		cfg.MinLoading = 0
		result := newCollector(cfg, logger).Collect(cmd.Context(), diagnostic.RunInput{
			SecureTransport: cfg.SecureTransport(),
		})

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printAudit(out, result)
		return nil
	},
}

func init() {
	auditCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func printAudit(w io.Writer, r diagnostic.Result) {
	s := r.Snapshot

	fmt.Fprintln(w, "Network Exposure")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-16s %s\n", "Public IP", s.IP)
	fmt.Fprintf(w, "%-16s %s\n", "ISP", s.ISP)
	fmt.Fprintf(w, "%-16s %s\n", "Location", s.Location)
	fmt.Fprintf(w, "%-16s %s\n", "Connection", s.ConnectionType)
	fmt.Fprintf(w, "%-16s %s\n", "Downlink", s.Downlink)
	fmt.Fprintf(w, "%-16s %s\n", "Latency", s.RTT)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Device Fingerprint")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-16s %s\n", "User Agent", s.UserAgent)
	fmt.Fprintf(w, "%-16s %s\n", "Platform", s.Platform)
	fmt.Fprintf(w, "%-16s %d\n", "CPU Cores", s.Cores)
	fmt.Fprintf(w, "%-16s %s\n", "Memory", s.Memory)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Recommendations")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, sg := range r.Suggestions {
		fmt.Fprintf(w, "%s [%s] %s\n", sg.Icon, sg.Severity, sg.Title)
		fmt.Fprintf(w, "    %s\n", sg.Text)
	}
}

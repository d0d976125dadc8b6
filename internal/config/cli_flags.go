package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for HTTP requests")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("config", "", "Path to YAML configuration file (optional)")
	cmd.PersistentFlags().StringP("browser", "b", "", "Browser kind: chrome or edge")
	cmd.PersistentFlags().String("browser-path", "", "Path to the browser executable")
	cmd.PersistentFlags().Bool("no-headless", false, "Run the browser with a visible window")
}

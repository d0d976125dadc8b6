// internal/cli/root.go
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/image-foundry/imgscrape/internal/app"
	"github.com/image-foundry/imgscrape/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "imgscrape",
	Short:   "Search Google Images and download the results",
	Long:    `imgscrape drives a headless browser through a Google Images search, scrolls until all results have rendered, and downloads the images it finds to disk.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Initialize the application before running commands; -h/help never
	// reaches this hook.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}

		appCtx, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(appCtx)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		appCtx := GetApp()
		if appCtx == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), appCtx.Config.HTTPTimeout)
		defer cancel()
		_ = appCtx.Close(ctx)
		SetApp(nil)
	}
}

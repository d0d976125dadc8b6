// internal/cli/scrape.go
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/image-foundry/imgscrape/internal/config"
	"github.com/image-foundry/imgscrape/internal/downloader"
	"github.com/image-foundry/imgscrape/internal/search"
	"github.com/image-foundry/imgscrape/internal/ui"
	headersutil "github.com/image-foundry/imgscrape/internal/utils/headers"
	"github.com/image-foundry/imgscrape/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	extensions   string
	limit        int
	baseURL      string
	scrollWait   time.Duration
	scrollScript string
	headers      []string
	noProgress   bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <query> [query...]",
	Short: "Run image searches and download the results",
	Long: `Runs one Google Images search per query, scrolling each results page
until every lazily-loaded thumbnail has rendered and clicking "Show more
results" whenever it appears. Image URLs are collected from the page
metadata, deduplicated across queries, and then downloaded sequentially,
named by their position in the collected set.

The browser is closed before downloads begin; only the HTTP client is
needed from that point on.`,
	Example: `  # Download images for a single query
  imgscrape scrape "minecraft pig"

  # Several queries share one deduplicated download set
  imgscrape scrape minecraft "minecraft pig" --output=./minecraft

  # Allow only PNGs, stop after 20 downloads
  imgscrape scrape gophers -e png -n 20

  # Drive Microsoft Edge from an explicit path
  imgscrape scrape sunsets --browser=edge --browser-path="C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to save downloaded images")
	scrapeCmd.Flags().StringVarP(&extensions, "extensions", "e", "", "Comma-separated extensions to download (empty uses config, default jpg,png,gif)")
	scrapeCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum images to download, 0 = all")
	scrapeCmd.Flags().StringVar(&baseURL, "base-url", "", "Base search URL override")
	scrapeCmd.Flags().DurationVar(&scrollWait, "scroll-wait", 0, "Wait between scroll rounds (e.g. 2s)")
	scrapeCmd.Flags().StringVar(&scrollScript, "scroll-script", "", "JavaScript evaluated each scroll round; must yield the page height")
	scrapeCmd.Flags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom download headers (e.g. -H \"Referer: https://example.com\")")
	scrapeCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the download progress bar")
}

func runScrape(cmd *cobra.Command, args []string) error {
	appCtx := GetApp()
	if appCtx == nil {
		return fmt.Errorf("application not initialized")
	}
	cfg := appCtx.Config

	// Flag overrides on top of config
	out := cfg.OutputDir
	if outputDir != "" {
		out = outputDir
	}
	exts := cfg.Extensions
	if extensions != "" {
		exts = extensions
	}
	maxDownloads := cfg.Limit
	if limit > 0 {
		maxDownloads = limit
	}
	searchBase := cfg.SearchBaseURL
	if baseURL != "" {
		searchBase = baseURL
	}
	wait := cfg.ScrollWait
	if scrollWait > 0 {
		// Same floor the config path enforces
		if err := config.ValidateScrollWait(scrollWait); err != nil {
			return err
		}
		wait = scrollWait
	}
	script := cfg.ScrollScript
	if scrollScript != "" {
		script = scrollScript
	}

	sess, err := appCtx.Session()
	if err != nil {
		return err
	}

	links := models.NewLinkSet()
	ctx := cmd.Context()

	for _, query := range args {
		searchURL, err := search.BuildSearchURL(searchBase, query)
		if err != nil {
			return err
		}

		log.Info().Str("query", query).Msg("Loading image search page")
		info, err := sess.Navigate(ctx, searchURL)
		if err != nil {
			return fmt.Errorf("failed to load search page for %q: %w", query, err)
		}
		log.Debug().Int("status", info.StatusCode).Int64("response_time_ms", info.ResponseTime).Msg("Search page loaded")

		if err := search.ScrollToBottom(ctx, sess, search.ScrollOptions{
			Wait:             wait,
			ShowMoreButtonID: cfg.ShowMoreButtonID,
			Script:           script,
			MaxRounds:        cfg.MaxScrollRounds,
		}); err != nil {
			return fmt.Errorf("scrolling failed for %q: %w", query, err)
		}

		added, skipped, err := search.CollectImageLinks(ctx, sess, search.ScrapeOptions{
			MetaSelector: cfg.MetaSelector,
			MetaURLKey:   cfg.MetaURLKey,
		}, links)
		if err != nil {
			return fmt.Errorf("scraping failed for %q: %w", query, err)
		}
		log.Info().
			Str("query", query).
			Int("added", added).
			Int("skipped_nodes", skipped).
			Int("total", links.Len()).
			Msg("Image links collected")
	}

	// The browser has done its job; downloads only need the HTTP client.
	if err := appCtx.CloseSession(); err != nil {
		log.Warn().Err(err).Msg("Error closing browser session")
	}

	if links.Len() == 0 {
		fmt.Println(ui.Info("No image links found."))
		return nil
	}

	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}

	report, err := appCtx.Downloader.DownloadLinks(ctx, links.Links(), downloader.BatchOptions{
		OutputDir:  absOut,
		Extensions: downloader.ParseExtensions(exts),
		Headers:    headersutil.ParseHeaders(headers),
		Limit:      maxDownloads,
		Progress:   !noProgress && !cfg.JSONLog,
	})
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func printReport(r *models.DownloadReport) {
	fmt.Printf("\n%s\n", ui.Bold("Summary:"))
	fmt.Printf("  %s %d links\n", ui.Bold("Found:"), r.Found)
	fmt.Printf("  %s %s\n", ui.Bold("Downloaded:"), ui.Success(fmt.Sprintf("%d", r.Downloaded)))
	fmt.Printf("  %s %d\n", ui.Bold("Skipped:"), r.Skipped)
	fmt.Printf("  %s %s\n", ui.Bold("Total Size:"), formatBytes(r.TotalBytes))
	fmt.Printf("  %s %s\n", ui.Bold("Elapsed:"), r.Elapsed.Round(time.Millisecond))
	fmt.Printf("  %s %s\n", ui.Bold("Output Directory:"), r.OutputDir)
}

// formatBytes formats byte count as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

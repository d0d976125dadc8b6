// Package downloader streams collected image links to local files, filtered
// and named by extension.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/image-foundry/imgscrape/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	urlutil "github.com/image-foundry/imgscrape/internal/utils/url"
)

// DownloadResult represents the result of a single download.
type DownloadResult struct {
	URL       string
	FilePath  string
	Size      int64
	Success   bool
	Error     error
	StartTime time.Time
	Duration  time.Duration
}

// BatchOptions configures a download pass over a link set.
type BatchOptions struct {
	OutputDir  string
	Extensions ExtensionSet      // empty set allows every extension
	Headers    map[string]string // extra request headers
	Limit      int               // max links to download, 0 = all
	Progress   bool              // render a progress bar on stderr
}

// Downloader handles sequential image downloads with streaming I/O.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a Downloader sharing the caller's HTTP client.
// A nil client gets a default with a 30s timeout.
func NewDownloader(client *http.Client, userAgent string) *Downloader {
	if userAgent == "" {
		userAgent = "imgscrape/1.0 (https://github.com/image-foundry/imgscrape)"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Downloader{
		client:    client,
		userAgent: userAgent,
	}
}

// Download streams a single link to dst.
func (d *Downloader) Download(ctx context.Context, link, dst string, headers map[string]string) *DownloadResult {
	result := &DownloadResult{
		URL:       link,
		FilePath:  dst,
		StartTime: time.Now(),
	}
	fail := func(err error) *DownloadResult {
		result.Error = err
		result.Duration = time.Since(result.StartTime)
		return result
	}

	if err := urlutil.ValidateURL(link); err != nil {
		return fail(err)
	}

	log.Debug().Str("url", link).Str("file", dst).Msg("Downloading image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", d.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("bad status: %d %s", resp.StatusCode, resp.Status))
	}

	outFile, err := os.Create(dst)
	if err != nil {
		return fail(fmt.Errorf("failed to create file: %w", err))
	}
	defer outFile.Close()

	bytesWritten, err := io.Copy(outFile, resp.Body)
	if err != nil {
		os.Remove(dst)
		return fail(fmt.Errorf("failed to write file: %w", err))
	}

	result.Size = bytesWritten
	result.Success = true
	result.Duration = time.Since(result.StartTime)

	log.Debug().
		Str("url", link).
		Int64("bytes", bytesWritten).
		Dur("duration", result.Duration).
		Msg("Download completed")

	return result
}

// DownloadLinks walks the collected links in order, skipping any whose
// extension is missing or not allowed, and saves the rest as
// <outdir>/<index>.<ext>. A failed fetch is logged, counted as a skip, and
// the pass continues.
func (d *Downloader) DownloadLinks(ctx context.Context, links []string, opts BatchOptions) (*models.DownloadReport, error) {
	start := time.Now()

	report := &models.DownloadReport{
		Found:     len(links),
		OutputDir: opts.OutputDir,
	}

	log.Info().Int("count", len(links)).Msg("Links found to download")

	if len(links) == 0 {
		report.Elapsed = time.Since(start)
		return report, nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(links),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	step := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if opts.Limit > 0 && report.Downloaded >= opts.Limit {
			log.Debug().Int("limit", opts.Limit).Msg("Download limit reached")
			break
		}

		ext, ok := LinkExtension(link)
		if !ok || !opts.Extensions.Allows(ext) {
			log.Info().Str("url", link).Msg("Skipping download")
			report.Skipped++
			step()
			continue
		}

		dst := filepath.Join(opts.OutputDir, fmt.Sprintf("%d.%s", i, ext))
		result := d.Download(ctx, link, dst, opts.Headers)
		if !result.Success {
			log.Info().Str("url", link).Err(result.Error).Msg("Skipping download")
			report.Skipped++
			step()
			continue
		}

		report.Downloaded++
		report.TotalBytes += result.Size
		step()
	}

	report.Elapsed = time.Since(start)

	log.Info().Int("skipped", report.Skipped).Msg("Links skipped being downloaded")
	log.Info().Int("downloaded", report.Downloaded).Msg("Links actually downloaded")

	return report, nil
}

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/image-foundry/imgscrape/internal/browser"
	"github.com/image-foundry/imgscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMetaSelector matches the hidden metadata nodes the results
	// page embeds next to each thumbnail.
	DefaultMetaSelector = "div.rg_meta"

	// DefaultMetaURLKey is the JSON field holding the original image URL.
	DefaultMetaURLKey = "ou"
)

// ScrapeOptions configures metadata extraction.
type ScrapeOptions struct {
	MetaSelector string
	MetaURLKey   string
}

func (o *ScrapeOptions) applyDefaults() {
	if o.MetaSelector == "" {
		o.MetaSelector = DefaultMetaSelector
	}
	if o.MetaURLKey == "" {
		o.MetaURLKey = DefaultMetaURLKey
	}
}

// ScrapeImageLinks parses rendered page HTML, decodes the JSON blob inside
// each metadata node, and adds the image URL field to the set. Nodes whose
// JSON does not parse or that lack the URL key are counted and skipped.
// Returns how many links were newly added and how many nodes were skipped.
func ScrapeImageLinks(html string, opts ScrapeOptions, set *models.LinkSet) (added, skipped int, err error) {
	opts.applyDefaults()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	nodes := doc.Find(opts.MetaSelector)
	log.Info().Int("count", nodes.Length()).Msg("Image metadata nodes found")

	nodes.Each(func(i int, sel *goquery.Selection) {
		var meta map[string]interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &meta); err != nil {
			log.Debug().Int("node", i).Err(err).Msg("Skipping malformed metadata node")
			skipped++
			return
		}

		link, ok := meta[opts.MetaURLKey].(string)
		if !ok || link == "" {
			log.Debug().Int("node", i).Str("key", opts.MetaURLKey).Msg("Metadata node missing URL key")
			skipped++
			return
		}

		log.Debug().Str("url", link).Msg("Found image url")
		if set.Add(link) {
			added++
		}
	})

	return added, skipped, nil
}

// CollectImageLinks pulls the rendered HTML out of the browser session and
// scrapes it for image links.
func CollectImageLinks(ctx context.Context, sess *browser.Session, opts ScrapeOptions, set *models.LinkSet) (added, skipped int, err error) {
	var html string
	if err := sess.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return 0, 0, fmt.Errorf("failed to read page HTML: %w", err)
	}
	return ScrapeImageLinks(html, opts, set)
}

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultScrollScript scrolls to the bottom of the page and yields the
	// resulting document height.
	DefaultScrollScript = "window.scrollTo(0, document.body.scrollHeight); document.body.scrollHeight;"

	// DefaultShowMoreButtonID is the element id of the "Show more results"
	// control on the results page.
	DefaultShowMoreButtonID = "smb"

	DefaultScrollWait      = 2 * time.Second
	DefaultMaxScrollRounds = 50
)

// Evaluator runs a JavaScript expression in the page and stores its result.
// *browser.Session satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context, script string, res interface{}) error
}

// ScrollOptions configures the scroll-to-bottom loop.
type ScrollOptions struct {
	Wait             time.Duration
	ShowMoreButtonID string
	Script           string
	MaxRounds        int
}

func (o *ScrollOptions) applyDefaults() {
	if o.Wait <= 0 {
		o.Wait = DefaultScrollWait
	}
	if o.ShowMoreButtonID == "" {
		o.ShowMoreButtonID = DefaultShowMoreButtonID
	}
	if o.Script == "" {
		o.Script = DefaultScrollScript
	}
	if o.MaxRounds <= 0 {
		o.MaxRounds = DefaultMaxScrollRounds
	}
}

// clickIfVisibleScript builds a snippet that clicks the "show more" button
// when it is present and visible, reporting whether a click happened. A
// hidden button is left alone; the next scroll round usually reveals it.
func clickIfVisibleScript(buttonID string) string {
	return fmt.Sprintf(
		`(function(){var b=document.getElementById(%q);if(b&&b.offsetParent!==null){b.click();return true;}return false;})();`,
		buttonID,
	)
}

// ScrollToBottom repeatedly scrolls the results page until its height stops
// growing, clicking the "Show more results" button whenever it becomes
// visible so all lazily-loaded results render. The round cap keeps a page
// whose height never converges from looping forever.
func ScrollToBottom(ctx context.Context, page Evaluator, opts ScrollOptions) error {
	opts.applyDefaults()

	sleep(ctx, opts.Wait)

	var height int64
	if err := page.Evaluate(ctx, opts.Script, &height); err != nil {
		return fmt.Errorf("initial scroll failed: %w", err)
	}
	log.Info().Int64("height", height).Msg("Scrolling results page")

	clickScript := clickIfVisibleScript(opts.ShowMoreButtonID)

	var cursor int64
	for round := 0; cursor < height && round < opts.MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		sleep(ctx, opts.Wait)
		cursor = height
		if err := page.Evaluate(ctx, opts.Script, &height); err != nil {
			return fmt.Errorf("scroll round %d failed: %w", round, err)
		}

		var clicked bool
		if err := page.Evaluate(ctx, clickScript, &clicked); err != nil {
			return fmt.Errorf("show-more probe failed: %w", err)
		}
		if clicked {
			log.Info().Msg("Clicked show-more button, loading more images")
		} else {
			log.Debug().
				Int64("cursor", cursor).
				Int64("height", height).
				Msg("Show-more button not yet visible")
		}
	}

	log.Debug().Int64("height", height).Msg("Reached bottom of results page")
	return nil
}

// sleep waits for d or until the context is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

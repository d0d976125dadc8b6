package config

import (
	"fmt"
	"time"
)

// MinScrollWait is the shortest allowed pause between scroll rounds.
// A shorter wait hammers the page before lazy content can render.
const MinScrollWait = 100 * time.Millisecond

// ValidateScrollWait enforces the scroll wait floor. Exposed so command
// flag overrides go through the same check as loaded config.
func ValidateScrollWait(d time.Duration) error {
	if d < MinScrollWait {
		return fmt.Errorf("scroll wait must be at least %s", MinScrollWait)
	}
	return nil
}

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.Browser != "chrome" && c.Browser != "edge" {
		return fmt.Errorf("browser must be chrome or edge, got %q", c.Browser)
	}
	if err := ValidateScrollWait(c.ScrollWait); err != nil {
		return err
	}
	if c.MaxScrollRounds <= 0 {
		return fmt.Errorf("max scroll rounds must be > 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}
	return nil
}

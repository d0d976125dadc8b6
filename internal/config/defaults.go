package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultUserAgent   = "imgscrape/1.0 (https://github.com/image-foundry/imgscrape)"
	DefaultHTTPTimeout = 30 * time.Second

	DefaultBrowser  = "chrome"
	DefaultHeadless = true

	DefaultScrollWait      = 2 * time.Second
	DefaultMaxScrollRounds = 50

	DefaultOutputDir  = "./images"
	DefaultExtensions = "jpg,png,gif"
)

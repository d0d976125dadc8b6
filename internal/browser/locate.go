package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// Locate finds a browser executable for the given kind across platforms.
// Returns an empty string when nothing was found, in which case chromedp
// falls back to its own default lookup.
func Locate(kind Kind) string {
	// Explicit override wins
	if path := os.Getenv("IMGSCRAPE_BROWSER_PATH"); path != "" {
		if isExecutable(path) {
			log.Debug().Str("path", path).Msg("Browser found via IMGSCRAPE_BROWSER_PATH")
			return path
		}
		log.Warn().Str("path", path).Msg("IMGSCRAPE_BROWSER_PATH set but not executable")
	}

	for _, path := range standardLocations(kind) {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Browser found at standard location")
			return path
		}
	}

	for _, name := range pathNames(kind) {
		if path, err := exec.LookPath(name); err == nil {
			log.Debug().Str("path", path).Msg("Browser found in PATH")
			return path
		}
	}

	log.Warn().
		Str("kind", string(kind)).
		Str("os", runtime.GOOS).
		Msg("Browser executable not found, relying on chromedp default")
	return ""
}

func standardLocations(kind Kind) []string {
	var candidates []string

	switch runtime.GOOS {
	case "darwin":
		if kind == KindEdge {
			candidates = append(candidates, "/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge")
		} else {
			candidates = append(candidates,
				"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
				"/Applications/Chromium.app/Contents/MacOS/Chromium",
			)
			if home := os.Getenv("HOME"); home != "" {
				candidates = append(candidates,
					filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
				)
			}
		}

	case "windows":
		bases := []string{
			os.Getenv("ProgramFiles"),
			os.Getenv("ProgramFiles(x86)"),
			os.Getenv("LocalAppData"),
		}
		for _, base := range bases {
			if base == "" {
				continue
			}
			if kind == KindEdge {
				candidates = append(candidates, filepath.Join(base, "Microsoft\\Edge\\Application\\msedge.exe"))
			} else {
				candidates = append(candidates,
					filepath.Join(base, "Google\\Chrome\\Application\\chrome.exe"),
					filepath.Join(base, "Chromium\\Application\\chrome.exe"),
				)
			}
		}

	case "linux":
		if kind == KindEdge {
			candidates = append(candidates,
				"/usr/bin/microsoft-edge",
				"/usr/bin/microsoft-edge-stable",
			)
		} else {
			candidates = append(candidates,
				"/usr/bin/google-chrome-stable",
				"/usr/bin/google-chrome",
				"/usr/bin/chromium-browser",
				"/usr/bin/chromium",
				"/snap/bin/chromium",
			)
			if home := os.Getenv("HOME"); home != "" {
				candidates = append(candidates,
					filepath.Join(home, ".local/share/flatpak/exports/bin/com.google.Chrome"),
					filepath.Join(home, ".local/share/flatpak/exports/bin/org.chromium.Chromium"),
				)
			}
		}
	}

	return candidates
}

func pathNames(kind Kind) []string {
	if kind == KindEdge {
		return []string{"msedge", "microsoft-edge", "microsoft-edge-stable"}
	}
	return []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser", "chrome"}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return !info.IsDir()
	}
	return !info.IsDir() && info.Mode()&0111 != 0
}

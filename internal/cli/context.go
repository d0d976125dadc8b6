// Package cli provides the command-line interface for the imgscrape application.
package cli

import (
	"github.com/image-foundry/imgscrape/internal/app"
)

// Global application reference shared by commands. Set once in the root
// command's PersistentPreRunE, cleared in PersistentPostRun.
var globalApp *app.Application

// SetApp stores the Application for commands to access.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the Application.
func GetApp() *app.Application {
	return globalApp
}

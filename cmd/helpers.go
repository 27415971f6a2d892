package cmd

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vdev-tools/vdev/internal/app"
	"github.com/vdev-tools/vdev/internal/audit"
	"github.com/vdev-tools/vdev/internal/config"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/logging"
	"github.com/vdev-tools/vdev/internal/show"
	"github.com/vdev-tools/vdev/internal/state"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// paths returns the default paths configuration.
func paths() *config.Paths {
	return app.Default.Paths
}

// loader returns the application's integration loader.
func loader() *integration.Loader {
	return app.Default.Loader
}

// store returns the application's active-environment store.
func store() state.Store {
	return app.Default.Store
}

// recordEvent appends to the activation history. Failures only warn since
// the state change has already happened.
func recordEvent(eventType audit.EventType, integration, environment string) {
	if err := app.Default.History.LogEvent(eventType, integration, environment); err != nil {
		logging.Warn("failed to record history", "integration", integration, "error", err)
	}
}

// isInteractive reports whether the picker can be shown. Tests replace it.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// outputFormat is shared by the commands that accept -o.
var outputFormat string

func parseOutputFormat() (show.Format, error) {
	return show.ParseFormat(outputFormat)
}

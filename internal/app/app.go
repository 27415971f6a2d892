// Package app provides the application context for vdev.
// It allows dependency injection for testing.
package app

import (
	"github.com/vdev-tools/vdev/internal/audit"
	"github.com/vdev-tools/vdev/internal/config"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/state"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Loader reads integration configurations from Paths.IntegrationsDir
	Loader *integration.Loader

	// Store records the active environment of each integration
	Store state.Store

	// History records activation events
	History *audit.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithLoader sets a custom integration loader
func WithLoader(l *integration.Loader) Option {
	return func(a *App) {
		a.Loader = l
	}
}

// WithStore sets a custom active-environment store
func WithStore(s state.Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithHistory sets a custom history logger
func WithHistory(h *audit.Logger) Option {
	return func(a *App) {
		a.History = h
	}
}

// New creates a new App with the given options. The loader and store
// default to the directories named by Paths.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Paths == nil {
		app.Paths = config.DefaultPaths()
	}
	if app.Loader == nil {
		app.Loader = integration.NewLoader(app.Paths.IntegrationsDir)
	}
	if app.Store == nil {
		app.Store = state.NewFileStore(app.Paths.EnvsDir)
	}
	if app.History == nil {
		app.History = audit.NewLogger(app.Paths.StateDir)
	}

	return app
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}

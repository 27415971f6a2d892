// Package testutil provides test utilities for command tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vdev-tools/vdev/internal/app"
	"github.com/vdev-tools/vdev/internal/config"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/state"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Paths   *config.Paths
	Store   *state.FileStore
	App     *app.App
	cleanup func()
}

// NewTestEnv creates a repository, config dir and state dir under a temp
// directory and makes an App using them the default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := config.NewPaths(
		filepath.Join(tmpDir, "config"),
		filepath.Join(tmpDir, "state"),
		filepath.Join(tmpDir, "repo"),
	)

	for _, dir := range []string{
		paths.ConfigDir,
		paths.StateDir,
		paths.IntegrationsDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	store := state.NewFileStore(paths.EnvsDir)
	testApp := app.New(
		app.WithPaths(paths),
		app.WithStore(store),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)

	return &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		Store:  store,
		App:    testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// AddIntegration writes content as the integration's config file.
func (e *TestEnv) AddIntegration(name, content string) string {
	e.T.Helper()

	dir := filepath.Join(e.Paths.IntegrationsDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.T.Fatalf("Failed to create integration dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, integration.ConfigFileName), []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write integration config: %v", err)
	}
	return dir
}

// AddIntegrationFixture writes an embedded fixture as the integration's
// config file.
func (e *TestEnv) AddIntegrationFixture(name, fixture string) string {
	e.T.Helper()

	data, err := LoadFixture(fixture)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", fixture, err)
	}
	return e.AddIntegration(name, string(data))
}

// Activate records environment as active for the integration without
// checking that it is declared.
func (e *TestEnv) Activate(name, environment string) {
	e.T.Helper()

	if err := e.Store.Activate(name, environment); err != nil {
		e.T.Fatalf("Failed to activate %s/%s: %v", name, environment, err)
	}
}

// Active returns the recorded active environment, or "" if there is none.
func (e *TestEnv) Active(name string) string {
	e.T.Helper()

	env, _, err := e.Store.Active(name)
	if err != nil {
		e.T.Fatalf("Failed to read active environment of %s: %v", name, err)
	}
	return env
}

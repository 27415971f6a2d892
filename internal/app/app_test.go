package app

import (
	"path/filepath"
	"testing"

	"github.com/vdev-tools/vdev/internal/audit"
	"github.com/vdev-tools/vdev/internal/config"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/state"
)

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Paths == nil {
		t.Error("Paths should not be nil")
	}
	if app.Loader == nil {
		t.Error("Loader should default to a directory loader")
	}
	if app.Store == nil {
		t.Error("Store should default to a file store")
	}
	if app.History == nil {
		t.Error("History should default to a logger under the state dir")
	}
}

func TestNew_WithPaths(t *testing.T) {
	root := t.TempDir()
	customPaths := config.NewPaths(filepath.Join(root, "config"), filepath.Join(root, "state"), filepath.Join(root, "repo"))

	app := New(WithPaths(customPaths))

	if app.Paths != customPaths {
		t.Error("WithPaths did not set custom paths")
	}

	fs, ok := app.Store.(*state.FileStore)
	if !ok {
		t.Fatalf("Store = %T, want *state.FileStore", app.Store)
	}
	if fs.Dir() != customPaths.EnvsDir {
		t.Errorf("Store dir = %q, want %q", fs.Dir(), customPaths.EnvsDir)
	}
}

func TestNew_WithHistory(t *testing.T) {
	history := audit.NewLogger(t.TempDir())

	app := New(WithHistory(history))

	if app.History != history {
		t.Error("WithHistory did not set history")
	}
}

func TestNew_WithStore(t *testing.T) {
	store := state.NewMemoryStore(nil)

	app := New(WithStore(store))

	if app.Store != store {
		t.Error("WithStore did not set store")
	}
}

func TestNew_MultipleOptions(t *testing.T) {
	customPaths := config.NewPaths("/custom/config", "/custom/state", "/custom/repo")
	loader := integration.NewLoader(t.TempDir())
	store := state.NewMemoryStore(nil)

	app := New(
		WithPaths(customPaths),
		WithLoader(loader),
		WithStore(store),
	)

	if app.Paths != customPaths {
		t.Error("Paths not set correctly")
	}
	if app.Loader != loader {
		t.Error("Loader not set correctly")
	}
	if app.Store != store {
		t.Error("Store not set correctly")
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	customApp := New(WithStore(state.NewMemoryStore(nil)))
	SetDefault(customApp)

	if Default != customApp {
		t.Error("SetDefault did not update Default")
	}
}

func TestResetDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	customApp := New(WithStore(state.NewMemoryStore(nil)))
	SetDefault(customApp)

	ResetDefault()

	if Default == customApp {
		t.Error("ResetDefault did not create new Default")
	}
	if Default.Paths == nil {
		t.Error("ResetDefault should create app with default paths")
	}
}

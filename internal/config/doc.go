// Package config provides vdev settings and filesystem paths.
//
// # Settings
//
// Settings are stored as TOML in <user config dir>/vdev/config.toml:
//
//	repo = "/home/me/src/vector"
//	state_dir = "/home/me/.local/state/vdev"
//
// Repo is the checkout whose scripts/integration directory holds the
// integration test configurations. StateDir optionally relocates the
// active-environment records.
//
// # Paths
//
// Paths resolves the directories everything else works from:
//
//	type Paths struct {
//	    ConfigDir       string // settings directory
//	    StateDir        string // persisted state root
//	    EnvsDir         string // active-environment records
//	    Repo            string // repository checkout
//	    IntegrationsDir string // <Repo>/scripts/integration
//	}
//
// The repository is taken from $VDEV_REPO, then the settings file, then the
// working directory. The state directory honours $XDG_STATE_HOME.
package config

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vdev-tools/vdev/internal/logging"
)

const (
	AppName          = "vdev"
	SettingsFileName = "config.toml"
	RepoEnvVar       = "VDEV_REPO"
	IntegrationsPath = "scripts/integration"
	EnvsDirName      = "envs"
)

// Settings holds the persisted vdev settings.
type Settings struct {
	Repo     string `toml:"repo,omitempty"`
	StateDir string `toml:"state_dir,omitempty"`
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if s.Repo != "" && !filepath.IsAbs(s.Repo) {
		return fmt.Errorf("repo must be an absolute path (got %q)", s.Repo)
	}
	if s.StateDir != "" && !filepath.IsAbs(s.StateDir) {
		return fmt.Errorf("state_dir must be an absolute path (got %q)", s.StateDir)
	}
	return nil
}

// LoadSettings reads config.toml from configDir. A missing file yields
// empty settings.
func LoadSettings(configDir string) (*Settings, error) {
	path := filepath.Join(configDir, SettingsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	md, err := toml.Decode(string(data), &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logging.Warn("ignoring unknown setting", "key", key.String(), "path", path)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	return &settings, nil
}

// SaveSettings writes settings to config.toml in configDir.
func SaveSettings(configDir string, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, SettingsFileName), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Paths holds the resolved directories
type Paths struct {
	ConfigDir       string
	StateDir        string
	EnvsDir         string
	Repo            string
	IntegrationsDir string
}

// NewPaths derives the dependent directories from the three roots.
func NewPaths(configDir, stateDir, repo string) *Paths {
	return &Paths{
		ConfigDir:       configDir,
		StateDir:        stateDir,
		EnvsDir:         filepath.Join(stateDir, EnvsDirName),
		Repo:            repo,
		IntegrationsDir: filepath.Join(repo, filepath.FromSlash(IntegrationsPath)),
	}
}

// DefaultPaths resolves paths from the environment and the settings file.
// Unreadable settings are logged and ignored so read-only commands keep working.
func DefaultPaths() *Paths {
	configDir := DefaultConfigDir()

	settings, err := LoadSettings(configDir)
	if err != nil {
		logging.Warn("failed to load settings", "error", err)
		settings = &Settings{}
	}

	stateDir := settings.StateDir
	if stateDir == "" {
		stateDir = DefaultStateDir()
	}

	return NewPaths(configDir, stateDir, ResolveRepo(settings))
}

// DefaultConfigDir returns <user config dir>/vdev.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "config")
	}
	return filepath.Join(dir, AppName)
}

// DefaultStateDir returns $XDG_STATE_HOME/vdev, falling back to
// ~/.local/state/vdev.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" && filepath.IsAbs(dir) {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "state")
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// ResolveRepo picks the repository root: $VDEV_REPO, then settings, then
// the working directory.
func ResolveRepo(settings *Settings) string {
	if repo := strings.TrimSpace(os.Getenv(RepoEnvVar)); repo != "" {
		if abs, err := filepath.Abs(repo); err == nil {
			return abs
		}
		return repo
	}
	if settings != nil && settings.Repo != "" {
		return settings.Repo
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

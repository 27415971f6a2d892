package integration

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"gopkg.in/yaml.v3"

	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/logging"
)

// ConfigFileName is the file each integration directory must contain.
const ConfigFileName = "test.yaml"

// integrationNameRegex allows letters, digits, '_', '.' and '-', starting
// with a letter or digit. Separators and ".." can never match.
var integrationNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)

// ValidateName checks that name can identify an integration directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("integration name cannot be empty")
	}
	if !integrationNameRegex.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid integration name %q: must start with a letter or digit and contain only letters, digits, '_', '.' or '-'", name)
	}
	return nil
}

// Source is a located configuration source.
type Source struct {
	Name string
	Dir  string
	Path string
	Data []byte
}

// Resolver locates and reads the configuration source of an integration.
// It returns an IntegrationNotFound error when there is none.
type Resolver interface {
	Resolve(name string) (Source, error)
}

// Enumerator lists every integration known to the system.
type Enumerator interface {
	Integrations() ([]string, error)
}

// Parser decodes a configuration source.
type Parser interface {
	Parse(data []byte) (*Config, error)
}

// DirSource resolves integrations as <Root>/<name>/test.yaml.
type DirSource struct {
	Root string
}

// NewDirSource returns a DirSource rooted at root.
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

// Resolve implements Resolver.
func (d *DirSource) Resolve(name string) (Source, error) {
	if err := ValidateName(name); err != nil {
		return Source{}, errors.ValidationError(err.Error())
	}

	dir, err := securejoin.SecureJoin(d.Root, name)
	if err != nil {
		return Source{}, fmt.Errorf("failed to resolve integration %s: %w", name, err)
	}
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Source{}, errors.IntegrationNotFound(name)
		}
		return Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Source{Name: name, Dir: dir, Path: path, Data: data}, nil
}

// Integrations implements Enumerator. A missing root has no integrations.
func (d *DirSource) Integrations() ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read integrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || ValidateName(entry.Name()) != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(d.Root, entry.Name(), ConfigFileName)); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// YAMLParser decodes test.yaml documents. Unknown fields are rejected.
type YAMLParser struct{}

// Parse implements Parser.
func (YAMLParser) Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("configuration file is empty")
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Entry is one successfully loaded integration.
type Entry struct {
	Name   string
	Dir    string
	Config *Config
}

// Loader loads integration configurations. It never caches.
type Loader struct {
	resolver   Resolver
	enumerator Enumerator
	parser     Parser
	strict     bool
}

// Option configures a Loader
type Option func(*Loader)

// WithResolver sets the source resolver
func WithResolver(r Resolver) Option {
	return func(l *Loader) {
		l.resolver = r
	}
}

// WithEnumerator sets the integration enumerator
func WithEnumerator(e Enumerator) Option {
	return func(l *Loader) {
		l.enumerator = e
	}
}

// WithParser sets the configuration parser
func WithParser(p Parser) Option {
	return func(l *Loader) {
		l.parser = p
	}
}

// WithStrict makes CollectAll fail on the first malformed integration
// instead of skipping it.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// NewLoader returns a Loader reading from root unless options replace the
// collaborators.
func NewLoader(root string, opts ...Option) *Loader {
	src := NewDirSource(root)
	l := &Loader{
		resolver:   src,
		enumerator: src,
		parser:     YAMLParser{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves and parses one integration, returning its directory and
// configuration.
func (l *Loader) Load(name string) (string, *Config, error) {
	src, err := l.resolver.Resolve(name)
	if err != nil {
		return "", nil, err
	}

	logging.Debug("parsing integration config", "integration", name, "path", src.Path)
	cfg, err := l.parser.Parse(src.Data)
	if err != nil {
		return "", nil, errors.ParseError(name, err)
	}
	return src.Dir, cfg, nil
}

// CollectAll loads every known integration, sorted by name. Malformed
// integrations are skipped with a warning unless the loader is strict; an
// entry is only returned when it parsed completely.
func (l *Loader) CollectAll() ([]Entry, error) {
	names, err := l.enumerator.Integrations()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		dir, cfg, err := l.Load(name)
		if err != nil {
			if l.strict {
				return nil, err
			}
			logging.Warn("skipping integration", "integration", name, "error", err)
			continue
		}
		entries = append(entries, Entry{Name: name, Dir: dir, Config: cfg})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

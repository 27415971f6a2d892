package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vdev-tools/vdev/internal/errors"
)

func writeIntegration(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"kafka", false},
		{"aws-s3", false},
		{"gcp_pubsub", false},
		{"splunk.v2", false},
		{"", true},
		{"../etc", true},
		{"a/b", true},
		{"-leading", true},
		{"a..b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "api", "args: [--lib]\nmatrix:\n  env: [dev, staging]\n")

	dir, cfg, err := NewLoader(root).Load("api")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if filepath.Base(dir) != "api" {
		t.Errorf("dir = %q, want .../api", dir)
	}
	if got := cfg.EnvironmentNames(); !reflect.DeepEqual(got, []string{"dev", "staging"}) {
		t.Errorf("EnvironmentNames() = %v", got)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, _, err := NewLoader(t.TempDir()).Load("unknown")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.HasCode(err, errors.ExitIntegrationNotFound) {
		t.Errorf("error = %v, want IntegrationNotFound", err)
	}
}

func TestLoad_DirectoryWithoutConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewLoader(root).Load("empty")
	if !errors.HasCode(err, errors.ExitIntegrationNotFound) {
		t.Errorf("error = %v, want IntegrationNotFound", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "broken", "args: [--lib\n")

	_, _, err := NewLoader(root).Load("broken")
	if !errors.HasCode(err, errors.ExitParseError) {
		t.Fatalf("error = %v, want ParseError", err)
	}

	var vdevErr *errors.VdevError
	if !errors.As(err, &vdevErr) || vdevErr.Cause == nil {
		t.Error("ParseError should carry the underlying cause")
	}
}

func TestLoad_InvalidName(t *testing.T) {
	_, _, err := NewLoader(t.TempDir()).Load("../outside")
	if err == nil {
		t.Fatal("expected error for traversal name")
	}
	if errors.HasCode(err, errors.ExitIntegrationNotFound) {
		t.Error("traversal name should be rejected as invalid, not looked up")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "kafka", kafkaConfig)
	loader := NewLoader(root)

	_, first, err := loader.Load("kafka")
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	_, second, err := loader.Load("kafka")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if first == second {
		t.Error("Load should not return a cached instance")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("loading the same source twice should give identical configs")
	}
}

func TestLoad_NoCaching(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "api", "matrix:\n  env: [dev]\n")
	loader := NewLoader(root)

	if _, _, err := loader.Load("api"); err != nil {
		t.Fatal(err)
	}
	writeIntegration(t, root, "api", "matrix:\n  env: [dev, prod]\n")

	_, cfg, err := loader.Load("api")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(cfg.Environments()); n != 2 {
		t.Errorf("len(Environments()) = %d, want 2 after source change", n)
	}
}

func TestDirSource_Integrations(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "redis", "args: []\n")
	writeIntegration(t, root, "amqp", "args: []\n")
	if err := os.MkdirAll(filepath.Join(root, "no-config"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("docs"), 0644); err != nil {
		t.Fatal(err)
	}

	names, err := NewDirSource(root).Integrations()
	if err != nil {
		t.Fatalf("Integrations failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"amqp", "redis"}) {
		t.Errorf("Integrations() = %v, want [amqp redis]", names)
	}
}

func TestDirSource_MissingRoot(t *testing.T) {
	names, err := NewDirSource(filepath.Join(t.TempDir(), "missing")).Integrations()
	if err != nil {
		t.Fatalf("Integrations failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Integrations() = %v, want none", names)
	}
}

func TestCollectAll_SkipsInvalid(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "good", "matrix:\n  env: [dev]\n")
	writeIntegration(t, root, "bad", "matrix: [\n")

	entries, err := NewLoader(root).CollectAll()
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "good" {
		t.Fatalf("entries = %+v, want only good", entries)
	}
	if entries[0].Config == nil {
		t.Error("entry must carry a parsed config")
	}
}

func TestCollectAll_Strict(t *testing.T) {
	root := t.TempDir()
	writeIntegration(t, root, "good", "args: []\n")
	writeIntegration(t, root, "bad", "matrix: [\n")

	_, err := NewLoader(root, WithStrict(true)).CollectAll()
	if !errors.HasCode(err, errors.ExitParseError) {
		t.Errorf("error = %v, want ParseError", err)
	}
}

type fakeSource struct {
	sources map[string]string
}

func (f fakeSource) Resolve(name string) (Source, error) {
	data, ok := f.sources[name]
	if !ok {
		return Source{}, errors.IntegrationNotFound(name)
	}
	return Source{Name: name, Dir: "/fake/" + name, Data: []byte(data)}, nil
}

func (f fakeSource) Integrations() ([]string, error) {
	names := make([]string, 0, len(f.sources))
	for name := range f.sources {
		names = append(names, name)
	}
	return names, nil
}

type failingEnumerator struct{}

func (failingEnumerator) Integrations() ([]string, error) {
	return nil, fmt.Errorf("permission denied")
}

func TestCollectAll_CustomCollaborators(t *testing.T) {
	src := fakeSource{sources: map[string]string{
		"zeta":  "args: []\n",
		"alpha": "matrix:\n  v: [\"1\"]\n",
	}}

	entries, err := NewLoader("", WithResolver(src), WithEnumerator(src)).CollectAll()
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "alpha" || entries[1].Name != "zeta" {
		t.Errorf("entries not sorted by name: %+v", entries)
	}
	if entries[0].Dir != "/fake/alpha" {
		t.Errorf("Dir = %q", entries[0].Dir)
	}
}

func TestCollectAll_EnumeratorError(t *testing.T) {
	_, err := NewLoader("", WithEnumerator(failingEnumerator{})).CollectAll()
	if err == nil {
		t.Error("expected enumerator error to propagate")
	}
}

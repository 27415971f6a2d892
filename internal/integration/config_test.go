package integration

import (
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Config {
	t.Helper()
	cfg, err := YAMLParser{}.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return cfg
}

const kafkaConfig = `
args:
  - --features
  - kafka-integration-tests
  - --lib
  - "::kafka::"
features: [kafka-integration-tests]
test_filter: "::kafka::"
env:
  KAFKA_HOST: kafka
  AWS_PROFILE:
runner:
  env:
    RUST_LOG: info
  volumes:
    /certs: tests/data/ca
    /var/run/docker.sock: /var/run/docker.sock
  needs_docker_socket: true
matrix:
  version: ["2.8", "3.5"]
  flavor: [plain, sasl]
paths:
  - "src/sources/kafka/**"
`

func TestParse_FullConfig(t *testing.T) {
	cfg := parse(t, kafkaConfig)

	if got := strings.Join(cfg.Args, " "); got != "--features kafka-integration-tests --lib ::kafka::" {
		t.Errorf("Args = %q", got)
	}
	if cfg.TestFilter == nil || *cfg.TestFilter != "::kafka::" {
		t.Errorf("TestFilter = %v", cfg.TestFilter)
	}
	if v, ok := cfg.Env.Get("AWS_PROFILE"); !ok || v != nil {
		t.Error("AWS_PROFILE should be a passthrough")
	}
	if cfg.Runner.Env.Len() != 1 {
		t.Errorf("Runner.Env.Len() = %d, want 1", cfg.Runner.Env.Len())
	}
	if !cfg.Runner.NeedsDockerSocket {
		t.Error("NeedsDockerSocket should be true")
	}
	if len(cfg.Runner.Volumes) != 2 {
		t.Fatalf("len(Volumes) = %d, want 2", len(cfg.Runner.Volumes))
	}
	if v := cfg.Runner.Volumes[0]; v.Target != "/certs" || v.Source != "tests/data/ca" {
		t.Errorf("Volumes[0] = %+v", v)
	}
	if len(cfg.Paths) != 1 || len(cfg.Features) != 1 {
		t.Errorf("Paths = %v, Features = %v", cfg.Paths, cfg.Features)
	}
	if cfg.Test != nil {
		t.Errorf("Test = %q, want unset", *cfg.Test)
	}
}

func TestParse_TestName(t *testing.T) {
	cfg := parse(t, "test: kafka::consumer\ntest_filter: \"::kafka::\"\n")

	if cfg.Test == nil || *cfg.Test != "kafka::consumer" {
		t.Errorf("Test = %v, want kafka::consumer", cfg.Test)
	}
	if cfg.TestFilter == nil || *cfg.TestFilter != "::kafka::" {
		t.Errorf("TestFilter = %v", cfg.TestFilter)
	}
}

func TestParse_Aliases(t *testing.T) {
	cfg := parse(t, `
runner:
  volumes:
    /a: &src tests/data
    /b: *src
matrix:
  a: &values [x, y]
  b: *values
  c: [&one "1", "2"]
  d: [*one]
`)

	if len(cfg.Runner.Volumes) != 2 || cfg.Runner.Volumes[1].Source != "tests/data" {
		t.Errorf("Volumes = %+v", cfg.Runner.Volumes)
	}
	if len(cfg.Matrix) != 4 {
		t.Fatalf("len(Matrix) = %d, want 4", len(cfg.Matrix))
	}
	if got := strings.Join(cfg.Matrix[1].Values, ","); got != "x,y" {
		t.Errorf("aliased axis values = %s, want x,y", got)
	}
	if got := strings.Join(cfg.Matrix[3].Values, ","); got != "1" {
		t.Errorf("aliased item values = %s, want 1", got)
	}
	if n := len(cfg.Environments()); n != 8 {
		t.Errorf("len(Environments()) = %d, want 8", n)
	}
}

func TestEnvironments_MatrixOrder(t *testing.T) {
	cfg := parse(t, kafkaConfig)

	want := []string{"2.8-plain", "2.8-sasl", "3.5-plain", "3.5-sasl"}
	got := cfg.EnvironmentNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("EnvironmentNames() = %v, want %v", got, want)
	}

	env, ok := cfg.Environment("3.5-sasl")
	if !ok {
		t.Fatal("Environment(3.5-sasl) not found")
	}
	if got := strings.Join(env.Vars.Names(), ","); got != "version,flavor" {
		t.Errorf("Vars names = %s", got)
	}
	if v, _ := env.Vars.Get("flavor"); v == nil || *v != "sasl" {
		t.Errorf("flavor = %v, want sasl", v)
	}
}

func TestEnvironments_Empty(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no matrix", "args: [--lib]\n"},
		{"empty matrix", "matrix: {}\n"},
		{"axis without values", "matrix:\n  version: []\n  flavor: [a]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parse(t, tt.src)
			if n := len(cfg.Environments()); n != 0 {
				t.Errorf("len(Environments()) = %d, want 0", n)
			}
		})
	}
}

func TestEnvironments_ScalarAxis(t *testing.T) {
	cfg := parse(t, "matrix:\n  version: latest\n")

	if got := cfg.EnvironmentNames(); len(got) != 1 || got[0] != "latest" {
		t.Errorf("EnvironmentNames() = %v, want [latest]", got)
	}
}

func TestEnvironments_ReturnsCopy(t *testing.T) {
	cfg := parse(t, "matrix:\n  version: [a, b]\n")

	envs := cfg.Environments()
	envs[0].Name = "mutated"

	if cfg.EnvironmentNames()[0] != "a" {
		t.Error("Environments() must not expose internal slice")
	}
}

func TestEffectiveEnv(t *testing.T) {
	cfg := parse(t, "env:\n  version: base\n  HOST: h\nmatrix:\n  version: [\"1\"]\n")

	env, ok := cfg.EffectiveEnv("1")
	if !ok {
		t.Fatal("EffectiveEnv(1) not found")
	}
	if v, _ := env.Get("version"); v == nil || *v != "1" {
		t.Errorf("version = %v, want 1", v)
	}
	if _, ok := cfg.EffectiveEnv("missing"); ok {
		t.Error("EffectiveEnv(missing) should report false")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", "argz: [--lib]\n"},
		{"malformed yaml", "args: [--lib\n"},
		{"empty arg", "args: [\"\"]\n"},
		{"volume without source", "runner:\n  volumes:\n    /data:\n"},
		{"volumes not mapping", "runner:\n  volumes: [/data]\n"},
		{"duplicate matrix variable", "matrix:\n  v: [a]\n  v: [b]\n"},
		{"duplicate environment name", "matrix:\n  a: [x-y, x]\n  b: [z, y-z]\n"},
		{"nested matrix values", "matrix:\n  v: [[a]]\n"},
		{"aliased mapping as matrix values", "matrix:\n  a: &m {k: v}\n  b: *m\n"},
		{"aliased null volume source", "runner:\n  volumes:\n    /a: &n ~\n    /b: *n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (YAMLParser{}).Parse([]byte(tt.src)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\n", "# only a comment\n"} {
		_, err := (YAMLParser{}).Parse([]byte(src))
		if err == nil {
			t.Fatalf("Parse(%q) should fail", src)
		}
		if !strings.Contains(err.Error(), "configuration file is empty") {
			t.Errorf("Parse(%q) error = %v", src, err)
		}
	}
}

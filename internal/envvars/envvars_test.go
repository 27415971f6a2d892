package envvars

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func mustNew(t *testing.T, vars ...Var) Environment {
	t.Helper()
	env, err := New(vars...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return env
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		vars    []Var
		wantErr bool
	}{
		{"empty", nil, false},
		{"fixed and passthrough", []Var{Fixed("A", "1"), Passthrough("B")}, false},
		{"duplicate name", []Var{Fixed("A", "1"), Fixed("A", "2")}, true},
		{"empty name", []Var{Fixed("", "1")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.vars...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsEmptyMatchesIteration(t *testing.T) {
	envs := []Environment{
		{},
		mustNew(t),
		mustNew(t, Passthrough("HOME")),
		mustNew(t, Fixed("A", ""), Fixed("B", "x")),
	}

	for _, env := range envs {
		count := 0
		for range env.All() {
			count++
		}
		if env.IsEmpty() != (count == 0) {
			t.Errorf("IsEmpty() = %v but iteration produced %d pairs", env.IsEmpty(), count)
		}
		if env.Len() != count {
			t.Errorf("Len() = %d, iteration produced %d", env.Len(), count)
		}
	}
}

func TestAll_DeclarationOrderAndRestartable(t *testing.T) {
	env := mustNew(t, Fixed("ZETA", "z"), Passthrough("ALPHA"), Fixed("MID", "m"))

	for pass := 0; pass < 2; pass++ {
		var names []string
		for name := range env.All() {
			names = append(names, name)
		}
		if got := strings.Join(names, ","); got != "ZETA,ALPHA,MID" {
			t.Errorf("pass %d: order = %s, want ZETA,ALPHA,MID", pass, got)
		}
	}
}

func TestAll_EarlyBreak(t *testing.T) {
	env := mustNew(t, Fixed("A", "1"), Fixed("B", "2"), Fixed("C", "3"))

	seen := 0
	for range env.All() {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("seen = %d, want 1", seen)
	}
}

func TestImmutable(t *testing.T) {
	value := "original"
	env := mustNew(t, Var{Name: "A", Value: &value})
	value = "changed"

	got, _ := env.Get("A")
	if *got != "original" {
		t.Errorf("Get(A) = %q, input mutation leaked into environment", *got)
	}

	*got = "mutated"
	again, _ := env.Get("A")
	if *again != "original" {
		t.Errorf("Get(A) = %q, returned pointer aliases internal state", *again)
	}
}

func TestGet(t *testing.T) {
	env := mustNew(t, Fixed("A", "1"), Passthrough("B"))

	if v, ok := env.Get("A"); !ok || v == nil || *v != "1" {
		t.Errorf("Get(A) = %v, %v", v, ok)
	}
	if v, ok := env.Get("B"); !ok || v != nil {
		t.Errorf("Get(B) = %v, %v; want nil, true", v, ok)
	}
	if _, ok := env.Get("C"); ok {
		t.Error("Get(C) should report not declared")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  string
	}{
		{"LOG", Value("debug"), `LOG="debug"`},
		{"EMPTY", Value(""), `EMPTY=""`},
		{"SPACED", Value("a b\tc"), `SPACED="a b\tc"`},
		{"QUOTED", Value(`say "hi"`), `QUOTED="say \"hi\""`},
		{"HOME", nil, "HOME (passthrough)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.name, tt.value); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLines_RenderingContract(t *testing.T) {
	env := mustNew(t, Fixed("A", "1"), Passthrough("B"), Fixed("C", ""))

	lines := env.Lines()
	if len(lines) != 3 {
		t.Fatalf("len(Lines()) = %d, want 3", len(lines))
	}
	for i, name := range env.Names() {
		value, _ := env.Get(name)
		if value != nil && !strings.HasPrefix(lines[i], name+"=") {
			t.Errorf("line %q for valued variable lacks '='", lines[i])
		}
		if value == nil && !strings.Contains(lines[i], "(passthrough)") {
			t.Errorf("line %q for passthrough lacks marker", lines[i])
		}
	}
}

func TestMerge(t *testing.T) {
	base := mustNew(t, Fixed("A", "1"), Passthrough("B"), Fixed("C", "3"))
	overlay := mustNew(t, Fixed("B", "two"), Fixed("D", "4"))

	merged := base.Merge(overlay)

	if got := strings.Join(merged.Names(), ","); got != "A,B,C,D" {
		t.Errorf("Names() = %s, want A,B,C,D", got)
	}
	if v, _ := merged.Get("B"); v == nil || *v != "two" {
		t.Errorf("B = %v, want two", v)
	}
	if v, _ := base.Get("B"); v != nil {
		t.Error("Merge must not modify the receiver")
	}
}

func TestMarshalJSON(t *testing.T) {
	env := mustNew(t, Fixed("Z", "last"), Passthrough("A"))

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if got := string(data); got != `{"Z":"last","A":null}` {
		t.Errorf("Marshal = %s", got)
	}

	empty, _ := json.Marshal(Environment{})
	if string(empty) != "{}" {
		t.Errorf("empty Marshal = %s, want {}", empty)
	}
}

func TestUnmarshalYAML(t *testing.T) {
	src := `
env:
  ZOOKEEPER: "zk:2181"
  PORT: 8080
  EMPTY: ""
  AWS_PROFILE:
  TILDE: ~
`
	var doc struct {
		Env Environment `yaml:"env"`
	}
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if got := strings.Join(doc.Env.Names(), ","); got != "ZOOKEEPER,PORT,EMPTY,AWS_PROFILE,TILDE" {
		t.Errorf("order = %s", got)
	}
	if v, _ := doc.Env.Get("PORT"); v == nil || *v != "8080" {
		t.Errorf("PORT = %v, want 8080", v)
	}
	if v, ok := doc.Env.Get("EMPTY"); !ok || v == nil || *v != "" {
		t.Errorf("EMPTY = %v, %v; want explicit empty value", v, ok)
	}
	for _, name := range []string{"AWS_PROFILE", "TILDE"} {
		if v, ok := doc.Env.Get(name); !ok || v != nil {
			t.Errorf("%s = %v, %v; want passthrough", name, v, ok)
		}
	}
}

func TestUnmarshalYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"duplicate key", "env:\n  A: 1\n  A: 2\n"},
		{"sequence value", "env:\n  A: [1, 2]\n"},
		{"not a mapping", "env: [A, B]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Env Environment `yaml:"env"`
			}
			if err := yaml.Unmarshal([]byte(tt.src), &doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnmarshalYAML_NullIsEmpty(t *testing.T) {
	var doc struct {
		Env Environment `yaml:"env"`
	}
	if err := yaml.Unmarshal([]byte("env:\n"), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !doc.Env.IsEmpty() {
		t.Error("null env should decode to an empty environment")
	}
}

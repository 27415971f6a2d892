package envvars

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"gopkg.in/yaml.v3"
)

// Var is a single environment variable. A nil Value marks a passthrough.
type Var struct {
	Name  string
	Value *string
}

// Environment is an ordered set of environment variables with unique names.
// The zero value is an empty environment.
type Environment struct {
	vars []Var
}

// Value returns a pointer to s, for building Vars with a fixed value.
func Value(s string) *string {
	return &s
}

// Passthrough returns a Var whose value is inherited from the caller.
func Passthrough(name string) Var {
	return Var{Name: name}
}

// Fixed returns a Var with the given value.
func Fixed(name, value string) Var {
	return Var{Name: name, Value: Value(value)}
}

// New builds an Environment from vars in the given order.
func New(vars ...Var) (Environment, error) {
	seen := make(map[string]struct{}, len(vars))
	out := make([]Var, 0, len(vars))
	for _, v := range vars {
		if v.Name == "" {
			return Environment{}, fmt.Errorf("environment variable name cannot be empty")
		}
		if _, dup := seen[v.Name]; dup {
			return Environment{}, fmt.Errorf("duplicate environment variable %q", v.Name)
		}
		seen[v.Name] = struct{}{}
		out = append(out, Var{Name: v.Name, Value: clone(v.Value)})
	}
	return Environment{vars: out}, nil
}

func clone(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Len returns the number of variables.
func (e Environment) Len() int {
	return len(e.vars)
}

// IsEmpty reports whether the environment has no variables.
func (e Environment) IsEmpty() bool {
	return len(e.vars) == 0
}

// All yields every variable in declaration order. A nil value is a passthrough.
func (e Environment) All() iter.Seq2[string, *string] {
	return func(yield func(string, *string) bool) {
		for _, v := range e.vars {
			if !yield(v.Name, clone(v.Value)) {
				return
			}
		}
	}
}

// Vars returns a copy of the variables in declaration order.
func (e Environment) Vars() []Var {
	out := make([]Var, len(e.vars))
	for i, v := range e.vars {
		out[i] = Var{Name: v.Name, Value: clone(v.Value)}
	}
	return out
}

// Names returns the variable names in declaration order.
func (e Environment) Names() []string {
	names := make([]string, len(e.vars))
	for i, v := range e.vars {
		names[i] = v.Name
	}
	return names
}

// Get looks up a variable. ok is false when the name is not declared;
// a declared passthrough returns (nil, true).
func (e Environment) Get(name string) (value *string, ok bool) {
	for _, v := range e.vars {
		if v.Name == name {
			return clone(v.Value), true
		}
	}
	return nil, false
}

// Merge returns a new Environment with overlay applied on top of e.
// Names already in e keep their position and take the overlay value; new
// names are appended in overlay order.
func (e Environment) Merge(overlay Environment) Environment {
	merged := e.Vars()
	index := make(map[string]int, len(merged))
	for i, v := range merged {
		index[v.Name] = i
	}
	for _, v := range overlay.vars {
		if i, ok := index[v.Name]; ok {
			merged[i].Value = clone(v.Value)
			continue
		}
		index[v.Name] = len(merged)
		merged = append(merged, Var{Name: v.Name, Value: clone(v.Value)})
	}
	return Environment{vars: merged}
}

// Format renders one variable for display: name="value" with the value
// quoted, or "name (passthrough)" when no value is set.
func Format(name string, value *string) string {
	if value == nil {
		return name + " (passthrough)"
	}
	return fmt.Sprintf("%s=%q", name, *value)
}

// Lines renders every variable with Format, in declaration order.
func (e Environment) Lines() []string {
	lines := make([]string, 0, len(e.vars))
	for name, value := range e.All() {
		lines = append(lines, Format(name, value))
	}
	return lines
}

// String joins Lines with spaces.
func (e Environment) String() string {
	return strings.Join(e.Lines(), " ")
}

// MarshalJSON encodes the environment as an object in declaration order,
// with null for passthrough variables.
func (e Environment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range e.vars {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a mapping of variable names to scalar values,
// keeping declaration order. A null value is a passthrough.
func (e *Environment) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: environment must be a mapping", node.Line)
	}

	vars := make([]Var, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveAlias(node.Content[i+1])

		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return fmt.Errorf("line %d: environment variable name must be a non-empty string", key.Line)
		}
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("line %d: duplicate environment variable %q", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}

		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %s must be a scalar", val.Line, key.Value)
		}
		v := Var{Name: key.Value}
		if val.ShortTag() != "!!null" {
			v.Value = Value(val.Value)
		}
		vars = append(vars, v)
	}

	e.vars = vars
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

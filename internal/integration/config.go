package integration

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vdev-tools/vdev/internal/envvars"
)

// Config is the test configuration declared by one integration.
type Config struct {
	Args       []string            `yaml:"args" json:"args"`
	Features   []string            `yaml:"features" json:"features,omitempty"`
	Test       *string             `yaml:"test" json:"test,omitempty"`
	TestFilter *string             `yaml:"test_filter" json:"testFilter,omitempty"`
	Env        envvars.Environment `yaml:"env" json:"env"`
	Runner     Runner              `yaml:"runner" json:"runner"`
	Matrix     Matrix              `yaml:"matrix" json:"matrix,omitempty"`
	Paths      []string            `yaml:"paths" json:"paths,omitempty"`

	environments []Environment
}

// Runner is the execution profile shared by all environments.
type Runner struct {
	Env               envvars.Environment `yaml:"env" json:"env"`
	Volumes           Volumes             `yaml:"volumes" json:"volumes"`
	NeedsDockerSocket bool                `yaml:"needs_docker_socket" json:"needsDockerSocket"`
}

// Volume mounts Source at Target inside the runner.
type Volume struct {
	Target string `json:"target"`
	Source string `json:"source"`
}

// Volumes is an ordered target → source mapping.
type Volumes []Volume

// UnmarshalYAML decodes a mapping of mount targets to sources, keeping order.
func (v *Volumes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: volumes must be a mapping of target to source", node.Line)
	}
	out := make(Volumes, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], dealias(node.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return fmt.Errorf("line %d: volume target must be a non-empty string", key.Line)
		}
		if val.Kind != yaml.ScalarNode || val.ShortTag() == "!!null" {
			return fmt.Errorf("line %d: volume %s needs a source", val.Line, key.Value)
		}
		out = append(out, Volume{Target: key.Value, Source: val.Value})
	}
	*v = out
	return nil
}

// dealias follows alias nodes to the anchored node.
func dealias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// MatrixAxis is one matrix variable and the values it ranges over.
type MatrixAxis struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Matrix is the ordered list of axes environments are generated from.
type Matrix []MatrixAxis

// UnmarshalYAML decodes a mapping of variable names to value lists. A
// scalar is treated as a single-value list.
func (m *Matrix) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: matrix must be a mapping", node.Line)
	}
	out := make(Matrix, 0, len(node.Content)/2)
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], dealias(node.Content[i+1])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return fmt.Errorf("line %d: matrix variable must be a non-empty string", key.Line)
		}
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("line %d: duplicate matrix variable %q", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}

		axis := MatrixAxis{Name: key.Value}
		switch val.Kind {
		case yaml.ScalarNode:
			axis.Values = []string{val.Value}
		case yaml.SequenceNode:
			for _, item := range val.Content {
				item = dealias(item)
				if item.Kind != yaml.ScalarNode || item.Value == "" {
					return fmt.Errorf("line %d: matrix values of %s must be non-empty scalars", item.Line, key.Value)
				}
				axis.Values = append(axis.Values, item.Value)
			}
		default:
			return fmt.Errorf("line %d: matrix variable %s must list its values", val.Line, key.Value)
		}
		out = append(out, axis)
	}
	*m = out
	return nil
}

// Environment is one named variant of an integration.
type Environment struct {
	Name string              `json:"name"`
	Vars envvars.Environment `json:"vars"`
}

// expand generates the environments from the matrix.
func (m Matrix) expand() ([]Environment, error) {
	if len(m) == 0 {
		return nil, nil
	}
	for _, axis := range m {
		if len(axis.Values) == 0 {
			return nil, nil
		}
	}

	var envs []Environment
	seen := make(map[string]struct{})
	indices := make([]int, len(m))
	for {
		names := make([]string, len(m))
		vars := make([]envvars.Var, len(m))
		for i, axis := range m {
			names[i] = axis.Values[indices[i]]
			vars[i] = envvars.Fixed(axis.Name, axis.Values[indices[i]])
		}

		name := strings.Join(names, "-")
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("matrix produces duplicate environment %q", name)
		}
		seen[name] = struct{}{}

		env, err := envvars.New(vars...)
		if err != nil {
			return nil, err
		}
		envs = append(envs, Environment{Name: name, Vars: env})

		// advance the odometer, last axis fastest
		i := len(m) - 1
		for ; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(m[i].Values) {
				break
			}
			indices[i] = 0
		}
		if i < 0 {
			return envs, nil
		}
	}
}

// Validate checks the configuration and computes its environments.
func (c *Config) Validate() error {
	for i, arg := range c.Args {
		if arg == "" {
			return fmt.Errorf("args[%d] is empty", i)
		}
	}
	for _, v := range c.Runner.Volumes {
		if v.Target == "" {
			return fmt.Errorf("volume target cannot be empty")
		}
	}

	envs, err := c.Matrix.expand()
	if err != nil {
		return err
	}
	c.environments = envs
	return nil
}

// Environments returns the declared environments in declaration order.
func (c *Config) Environments() []Environment {
	out := make([]Environment, len(c.environments))
	copy(out, c.environments)
	return out
}

// EnvironmentNames returns the declared environment names in order.
func (c *Config) EnvironmentNames() []string {
	names := make([]string, len(c.environments))
	for i, env := range c.environments {
		names[i] = env.Name
	}
	return names
}

// Environment looks up a declared environment by name.
func (c *Config) Environment(name string) (Environment, bool) {
	for _, env := range c.environments {
		if env.Name == name {
			return env, true
		}
	}
	return Environment{}, false
}

// EffectiveEnv returns the base environment with the named environment's
// variables applied on top.
func (c *Config) EffectiveEnv(name string) (envvars.Environment, bool) {
	env, ok := c.Environment(name)
	if !ok {
		return envvars.Environment{}, false
	}
	return c.Env.Merge(env.Vars), true
}

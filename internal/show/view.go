package show

import (
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/mattn/go-runewidth"

	"github.com/vdev-tools/vdev/internal/envvars"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/logging"
	"github.com/vdev-tools/vdev/internal/state"
)

const (
	// MinNameWidth is the narrowest integration column of the summary.
	MinNameWidth = 16

	ActiveSuffix = " (active)"
	StaleSuffix  = " (active, stale)"

	labelSeparator = "  "
)

// ConfigSource provides integration configurations.
type ConfigSource interface {
	Load(name string) (string, *integration.Config, error)
	CollectAll() ([]integration.Entry, error)
}

// Label is an environment name and whether it is the active one.
type Label struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (l Label) String() string {
	if l.Active {
		return l.Name + ActiveSuffix
	}
	return l.Name
}

// Labels marks the environment equal to active. hasActive false leaves
// every label unmarked.
func Labels(names []string, active string, hasActive bool) []Label {
	labels := make([]Label, len(names))
	for i, name := range names {
		labels[i] = Label{Name: name, Active: hasActive && name == active}
	}
	return labels
}

func isStale(labels []Label, hasActive bool) bool {
	if !hasActive {
		return false
	}
	for _, l := range labels {
		if l.Active {
			return false
		}
	}
	return true
}

// Summary lists every integration.
type Summary struct {
	Width int          `json:"-"`
	Rows  []SummaryRow `json:"integrations"`
}

// SummaryRow is one integration of the summary.
type SummaryRow struct {
	Integration  string  `json:"integration"`
	Environments []Label `json:"environments"`
	Active       string  `json:"active,omitempty"`
	Stale        bool    `json:"stale,omitempty"`
}

// EnvironmentsText joins the labels with two spaces, followed by the stale
// active name if there is one.
func (r SummaryRow) EnvironmentsText() string {
	parts := make([]string, 0, len(r.Environments)+1)
	for _, l := range r.Environments {
		parts = append(parts, l.String())
	}
	if r.Stale {
		parts = append(parts, r.Active+StaleSuffix)
	}
	return strings.Join(parts, labelSeparator)
}

// NameWidth returns max(MinNameWidth, widest name) in terminal cells.
func NameWidth(names []string) int {
	width := MinNameWidth
	for _, name := range names {
		width = max(width, runewidth.StringWidth(name))
	}
	return width
}

// BuildSummary collects every integration and queries each one's active
// environment once.
func BuildSummary(src ConfigSource, store state.Reader) (*Summary, error) {
	entries, err := src.CollectAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	summary := &Summary{
		Width: NameWidth(names),
		Rows:  make([]SummaryRow, 0, len(entries)),
	}
	for _, e := range entries {
		active, ok, err := store.Active(e.Name)
		if err != nil {
			return nil, err
		}
		labels := Labels(e.Config.EnvironmentNames(), active, ok)
		row := SummaryRow{
			Integration:  e.Name,
			Environments: labels,
			Active:       active,
			Stale:        isStale(labels, ok),
		}
		if row.Stale {
			logging.ForIntegration(e.Name).Debug("active environment is not declared", "environment", active)
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

// Detail describes one integration.
type Detail struct {
	Integration  string              `json:"integration"`
	Dir          string              `json:"dir"`
	Args         []string            `json:"args"`
	Features     []string            `json:"features,omitempty"`
	Test         string              `json:"test,omitempty"`
	TestFilter   string              `json:"testFilter,omitempty"`
	Env          envvars.Environment `json:"env"`
	Runner       RunnerDetail        `json:"runner"`
	Environments []Label             `json:"environments"`
	Active       string              `json:"active,omitempty"`
	Stale        bool                `json:"stale,omitempty"`
}

// RunnerDetail is the runner profile of a Detail.
type RunnerDetail struct {
	Env               envvars.Environment  `json:"env"`
	Volumes           []integration.Volume `json:"volumes"`
	NoVolumes         bool                 `json:"noVolumes"`
	NeedsDockerSocket bool                 `json:"needsDockerSocket"`
}

// ArgsText joins the test arguments, quoting those that need it.
func (d *Detail) ArgsText() string {
	return shellquote.Join(d.Args...)
}

// BuildDetail loads one integration and queries its active environment.
// The two reads are not atomic with respect to concurrent activation.
func BuildDetail(src ConfigSource, store state.Reader, name string) (*Detail, error) {
	dir, cfg, err := src.Load(name)
	if err != nil {
		return nil, err
	}

	active, ok, err := store.Active(name)
	if err != nil {
		return nil, err
	}

	labels := Labels(cfg.EnvironmentNames(), active, ok)
	volumes := make([]integration.Volume, len(cfg.Runner.Volumes))
	copy(volumes, cfg.Runner.Volumes)

	d := &Detail{
		Integration: name,
		Dir:         dir,
		Args:        append([]string{}, cfg.Args...),
		Features:    cfg.Features,
		Env:         cfg.Env,
		Runner: RunnerDetail{
			Env:               cfg.Runner.Env,
			Volumes:           volumes,
			NoVolumes:         len(volumes) == 0,
			NeedsDockerSocket: cfg.Runner.NeedsDockerSocket,
		},
		Environments: labels,
		Active:       active,
		Stale:        isStale(labels, ok),
	}
	if cfg.Test != nil {
		d.Test = *cfg.Test
	}
	if cfg.TestFilter != nil {
		d.TestFilter = *cfg.TestFilter
	}
	return d, nil
}

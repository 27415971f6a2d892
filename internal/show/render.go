package show

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vdev-tools/vdev/internal/envvars"
)

// Format selects how views are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (must be text or json)", s)
}

const notAvailable = "N/A"

// Renderer writes views as text. Styling is only applied when the writer
// is a terminal.
type Renderer struct {
	w       io.Writer
	heading lipgloss.Style
	active  lipgloss.Style
	stale   lipgloss.Style
}

// NewRenderer returns a text Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		w:       w,
		heading: r.NewStyle().Bold(true),
		active:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		stale:   r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Summary writes the integration table.
func (r *Renderer) Summary(s *Summary) error {
	width := s.Width
	if width < MinNameWidth {
		width = MinNameWidth
	}

	var b strings.Builder
	b.WriteString(r.heading.Render(runewidth.FillRight("Integration Name", width)))
	b.WriteString(labelSeparator)
	b.WriteString(r.heading.Render("Environment Name(s)"))
	b.WriteString("\n")
	b.WriteString(runewidth.FillRight("----------------", width))
	b.WriteString(labelSeparator + "-------------------\n")

	for _, row := range s.Rows {
		line := runewidth.FillRight(row.Integration, width) + labelSeparator + r.labels(row.Environments, row.Active, row.Stale)
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) labels(labels []Label, active string, stale bool) string {
	parts := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		parts = append(parts, r.label(l))
	}
	if stale {
		parts = append(parts, r.stale.Render(active+StaleSuffix))
	}
	return strings.Join(parts, labelSeparator)
}

func (r *Renderer) label(l Label) string {
	if l.Active {
		return r.active.Render(l.String())
	}
	return l.String()
}

// Detail writes the description of one integration.
func (r *Renderer) Detail(d *Detail) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", r.heading.Render("Test args:"), d.ArgsText())
	if len(d.Features) > 0 {
		fmt.Fprintf(&b, "%s %s\n", r.heading.Render("Features:"), strings.Join(d.Features, ","))
	}
	if d.Test != "" {
		fmt.Fprintf(&b, "%s %s\n", r.heading.Render("Test:"), d.Test)
	}
	if d.TestFilter != "" {
		fmt.Fprintf(&b, "%s %s\n", r.heading.Render("Test filter:"), d.TestFilter)
	}

	b.WriteString(r.heading.Render("Environment:") + "\n")
	writeEnv(&b, "  ", d.Env)

	b.WriteString(r.heading.Render("Runner:") + "\n")
	b.WriteString("  Environment:\n")
	writeEnv(&b, "    ", d.Runner.Env)
	b.WriteString("  Volumes:\n")
	if d.Runner.NoVolumes {
		b.WriteString("    " + notAvailable + "\n")
	} else {
		for _, v := range d.Runner.Volumes {
			fmt.Fprintf(&b, "    %s => %s\n", v.Target, v.Source)
		}
	}
	fmt.Fprintf(&b, "  Needs docker socket: %t\n", d.Runner.NeedsDockerSocket)

	b.WriteString(r.heading.Render("Environments:") + "\n")
	for _, l := range d.Environments {
		b.WriteString("  " + r.label(l) + "\n")
	}
	if d.Stale {
		b.WriteString("  " + r.stale.Render(d.Active+StaleSuffix) + "\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeEnv(b *strings.Builder, prefix string, env envvars.Environment) {
	if env.IsEmpty() {
		b.WriteString(prefix + notAvailable + "\n")
		return
	}
	for name, value := range env.All() {
		b.WriteString(prefix + envvars.Format(name, value) + "\n")
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

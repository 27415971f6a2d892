package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vdev-tools/vdev/internal/integration"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionDeactivate
	ActionQuit
)

// Option is one selectable environment of an integration.
type Option struct {
	Integration string
	Environment string
	Active      bool
	// Vars is the rendered matrix assignment of the environment.
	Vars string
}

// OptionsFor lists the environments of cfg in declaration order, marking
// the one equal to active.
func OptionsFor(name string, cfg *integration.Config, active string, hasActive bool) []Option {
	envs := cfg.Environments()
	options := make([]Option, len(envs))
	for i, env := range envs {
		options[i] = Option{
			Integration: name,
			Environment: env.Name,
			Active:      hasActive && env.Name == active,
			Vars:        env.Vars.String(),
		}
	}
	return options
}

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Option *Option
}

// envItem implements list.Item for an environment
type envItem struct {
	option Option
}

func (i envItem) Title() string {
	if i.option.Active {
		return i.option.Environment + " (active)"
	}
	return i.option.Environment
}

func (i envItem) Description() string {
	icon := "○"
	if i.option.Active {
		icon = "●"
	}
	return fmt.Sprintf("%s %s", icon, i.option.Vars)
}

func (i envItem) FilterValue() string {
	return i.option.Environment
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the environment picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a picker over options. The cursor starts on the
// active environment if there is one.
func NewPicker(title string, options []Option) Model {
	items := buildGroupedItems(options)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = fmt.Sprintf("%s (%d environments)", title, len(items)-headerCount(items))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	for i, item := range items {
		if env, ok := item.(envItem); ok && env.option.Active {
			l.Select(i)
			break
		}
	}
	skipHeaders(&l, 1)

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(envItem); ok {
				opt := item.option
				m.result = PickerResult{Action: ActionSelect, Option: &opt}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(envItem); ok {
				opt := item.option
				m.result = PickerResult{Action: ActionDeactivate, Option: &opt}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit

		case "up", "k", "down", "j":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			if isHeaderSelected(&m.list) {
				skipHeaders(&m.list, navigationDirection(msg))
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Activate  [d] Deactivate  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive environment picker
func RunPicker(title string, options []Option) (PickerResult, error) {
	if len(options) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	p := tea.NewProgram(NewPicker(title, options), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

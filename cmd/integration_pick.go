package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/logging"
	"github.com/vdev-tools/vdev/internal/tui"
)

var integrationPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive environment picker",
	Long: `Opens an interactive picker over the environments of every integration.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Activate the selected environment
  d      - Deactivate the selected integration
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runIntegrationPick,
}

func init() {
	integrationCmd.AddCommand(integrationPickCmd)
}

func runIntegrationPick(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return errors.ValidationError("pick requires a terminal, use: vdev integration activate <integration> <environment>")
	}

	logging.Debug("picker mode started")

	entries, err := loader().CollectAll()
	if err != nil {
		return err
	}

	var options []tui.Option
	for _, e := range entries {
		active, ok, err := store().Active(e.Name)
		if err != nil {
			return err
		}
		options = append(options, tui.OptionsFor(e.Name, e.Config, active, ok)...)
	}

	if len(options) == 0 {
		logInfo("No integration declares any environments in %s", paths().IntegrationsDir)
		return nil
	}

	result, err := tui.RunPicker("vdev - Select Environment", options)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionSelect:
		for _, e := range entries {
			if e.Name == result.Option.Integration {
				return activate(e.Name, e.Config, result.Option.Environment)
			}
		}
	case tui.ActionDeactivate:
		return deactivate(result.Option.Integration)
	}
	return nil
}

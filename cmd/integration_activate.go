package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/audit"
	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/logging"
	"github.com/vdev-tools/vdev/internal/tui"
)

var integrationActivateCmd = &cobra.Command{
	Use:   "activate <integration> [environment]",
	Short: "Mark an environment of an integration as active",
	Long: `Records the environment as the active one for the integration.

When the environment is omitted, the only declared environment is used; if
there are several, an interactive picker is shown on a terminal.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIntegrationActivate,
}

var integrationDeactivateCmd = &cobra.Command{
	Use:   "deactivate <integration>",
	Short: "Clear the active environment of an integration",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntegrationDeactivate,
}

func init() {
	integrationCmd.AddCommand(integrationActivateCmd)
	integrationCmd.AddCommand(integrationDeactivateCmd)
}

func runIntegrationActivate(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, cfg, err := loader().Load(name)
	if err != nil {
		return err
	}

	var env string
	if len(args) == 2 {
		env = args[1]
	} else {
		env, err = chooseEnvironment(name, cfg)
		if err != nil || env == "" {
			return err
		}
	}

	return activate(name, cfg, env)
}

func activate(name string, cfg *integration.Config, env string) error {
	if _, ok := cfg.Environment(env); !ok {
		return errors.EnvironmentNotFound(name, env)
	}

	if err := store().Activate(name, env); err != nil {
		return err
	}

	recordEvent(audit.EventActivate, name, env)
	logging.ForIntegration(name).Debug("environment activated", "environment", env)
	logSuccess("Activated %s for %s", env, name)
	return nil
}

// chooseEnvironment returns the environment to activate when none was
// named, or "" if the user cancelled the picker.
func chooseEnvironment(name string, cfg *integration.Config) (string, error) {
	names := cfg.EnvironmentNames()
	switch {
	case len(names) == 0:
		return "", errors.ValidationError(fmt.Sprintf("integration %s declares no environments", name))
	case len(names) == 1:
		return names[0], nil
	case !isInteractive():
		return "", errors.ValidationError(fmt.Sprintf(
			"integration %s has %d environments, specify one of: %s",
			name, len(names), strings.Join(names, ", ")))
	}

	active, ok, err := store().Active(name)
	if err != nil {
		return "", err
	}

	result, err := tui.RunPicker(name, tui.OptionsFor(name, cfg, active, ok))
	if err != nil {
		return "", fmt.Errorf("picker error: %w", err)
	}
	logging.Debug("picker result", "action", result.Action)

	switch result.Action {
	case tui.ActionSelect:
		return result.Option.Environment, nil
	case tui.ActionDeactivate:
		return "", deactivate(name)
	}
	return "", nil
}

func runIntegrationDeactivate(cmd *cobra.Command, args []string) error {
	return deactivate(args[0])
}

// deactivate does not require the integration to still exist, so records
// of removed integrations can be cleared.
func deactivate(name string) error {
	active, ok, err := store().Active(name)
	if err != nil {
		return err
	}
	if !ok {
		logInfo("No active environment for %s", name)
		return nil
	}

	if err := store().Deactivate(name); err != nil {
		return err
	}
	recordEvent(audit.EventDeactivate, name, active)
	logSuccess("Deactivated %s for %s", active, name)
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/errors"
)

var integrationEnvCmd = &cobra.Command{
	Use:   "env <integration> [environment]",
	Short: "Print the variables of an environment as a .env file",
	Long: `Prints the integration's environment variables with the matrix values of
the environment applied, in .env format. The active environment is used when
none is named.

Passthrough variables take their value from the current process and are
skipped with a warning when unset.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIntegrationEnv,
}

func init() {
	integrationCmd.AddCommand(integrationEnvCmd)
}

func runIntegrationEnv(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, cfg, err := loader().Load(name)
	if err != nil {
		return err
	}

	var env string
	if len(args) == 2 {
		env = args[1]
	} else {
		active, ok, err := store().Active(name)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ValidationError(fmt.Sprintf("integration %s has no active environment, name one explicitly", name))
		}
		env = active
	}

	vars, ok := cfg.EffectiveEnv(env)
	if !ok {
		return errors.EnvironmentNotFound(name, env)
	}

	out, missing, err := vars.DotEnv(os.LookupEnv)
	if err != nil {
		return fmt.Errorf("failed to render environment: %w", err)
	}
	for _, m := range missing {
		logWarning("%s is passed through but not set", m)
	}

	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/logging"
	"github.com/vdev-tools/vdev/internal/show"
)

var integrationShowCmd = &cobra.Command{
	Use:   "show [integration]",
	Short: "Show integrations and their environments",
	Long: `Without an argument, lists every integration with its environments.
The active environment of each integration is marked "(active)".

With an integration name, shows its test arguments, environment variables,
runner profile and environments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntegrationShow,
}

func init() {
	integrationShowCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text or json)")
	integrationCmd.AddCommand(integrationShowCmd)
}

func runIntegrationShow(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	if len(args) == 0 {
		logging.Debug("building summary", "dir", paths().IntegrationsDir)
		summary, err := show.BuildSummary(loader(), store())
		if err != nil {
			return err
		}
		if format == show.FormatJSON {
			return show.WriteJSON(cmd.OutOrStdout(), summary)
		}
		return show.NewRenderer(cmd.OutOrStdout()).Summary(summary)
	}

	detail, err := show.BuildDetail(loader(), store(), args[0])
	if err != nil {
		return err
	}
	if format == show.FormatJSON {
		return show.WriteJSON(cmd.OutOrStdout(), detail)
	}
	return show.NewRenderer(cmd.OutOrStdout()).Detail(detail)
}

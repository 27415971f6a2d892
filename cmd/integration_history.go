package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/app"
	"github.com/vdev-tools/vdev/internal/audit"
	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/integration"
	"github.com/vdev-tools/vdev/internal/show"
)

var integrationHistoryCmd = &cobra.Command{
	Use:   "history <integration>",
	Short: "Show the activation history of an integration",
	Long: `Lists every activation and deactivation recorded for the integration,
oldest first. With --clear the recorded history is deleted instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntegrationHistory,
}

var historyClear bool

func init() {
	integrationHistoryCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text or json)")
	integrationHistoryCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the recorded history")
	integrationCmd.AddCommand(integrationHistoryCmd)
}

func runIntegrationHistory(cmd *cobra.Command, args []string) error {
	name := args[0]

	format, err := parseOutputFormat()
	if err != nil {
		return errors.ValidationError(err.Error())
	}
	if err := integration.ValidateName(name); err != nil {
		return errors.ValidationError(err.Error())
	}

	if historyClear {
		if err := app.Default.History.Remove(name); err != nil {
			return errors.StateWriteError(name, err)
		}
		logSuccess("Cleared history for %s", name)
		return nil
	}

	events, err := app.Default.History.Events(name)
	if err != nil {
		return errors.StateReadError(name, err)
	}

	if format == show.FormatJSON {
		if events == nil {
			events = []audit.Event{}
		}
		return show.WriteJSON(cmd.OutOrStdout(), events)
	}

	if len(events) == 0 {
		logInfo("No history for %s", name)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		fmt.Fprintf(out, "[%s] %-10s %s\n", ts, e.Type, e.Environment)
	}
	return nil
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/show"
)

var integrationActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "List integrations with an active environment",
	Args:  cobra.NoArgs,
	RunE:  runIntegrationActive,
}

func init() {
	integrationActiveCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text or json)")
	integrationCmd.AddCommand(integrationActiveCmd)
}

// activeEntry is a state record checked against the current configuration.
type activeEntry struct {
	Integration string `json:"integration"`
	Environment string `json:"environment"`
	ActivatedAt string `json:"activatedAt,omitempty"`
	Status      string `json:"status"`
}

const (
	statusOK      = "ok"
	statusStale   = "stale"
	statusMissing = "missing"
	statusInvalid = "invalid"
)

func runIntegrationActive(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	records, err := store().List()
	if err != nil {
		return err
	}

	entries := make([]activeEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, activeEntry{
			Integration: rec.Integration,
			Environment: rec.Active,
			ActivatedAt: rec.ActivatedAt,
			Status:      recordStatus(rec.Integration, rec.Active),
		})
	}

	if format == show.FormatJSON {
		return show.WriteJSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		logInfo("No active environments. Activate one with: vdev integration activate <integration> <environment>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATION\tENVIRONMENT\tACTIVATED\tSTATUS")
	fmt.Fprintln(w, "-----------\t-----------\t---------\t------")
	for _, e := range entries {
		activated := e.ActivatedAt
		if activated == "" {
			activated = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Integration, e.Environment, activated, e.Status)
	}
	return w.Flush()
}

func recordStatus(name, env string) string {
	_, cfg, err := loader().Load(name)
	switch {
	case errors.HasCode(err, errors.ExitIntegrationNotFound):
		return statusMissing
	case err != nil:
		return statusInvalid
	}
	if _, ok := cfg.Environment(env); !ok {
		return statusStale
	}
	return statusOK
}

package cmd

import (
	"github.com/spf13/cobra"
)

var integrationCmd = &cobra.Command{
	Use:     "integration",
	Aliases: []string{"int"},
	Short:   "Inspect integrations and manage their active environments",
}

func init() {
	rootCmd.AddCommand(integrationCmd)
}

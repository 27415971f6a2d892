package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/app"
	"github.com/vdev-tools/vdev/internal/config"
	"github.com/vdev-tools/vdev/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	repoFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "vdev",
	Short: "Vector development helper",
	Long: `vdev inspects the integration test suites of a Vector checkout and
remembers which environment of each integration is active.

Integrations live under scripts/integration/<name>/test.yaml. Each declares
its test arguments, environment variables, runner profile and an environment
matrix. The repository root is taken from --repo, $VDEV_REPO, the settings
file, or the working directory, in that order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if repoFlag != "" {
			return useRepo(repoFlag)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Path to the Vector repository")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// useRepo rebuilds the default app around another repository root.
func useRepo(repo string) error {
	abs, err := filepath.Abs(repo)
	if err != nil {
		return err
	}
	current := paths()
	logging.Debug("using repository from flag", "repo", abs)
	app.SetDefault(app.New(
		app.WithPaths(config.NewPaths(current.ConfigDir, current.StateDir, abs)),
		app.WithStore(app.Default.Store),
		app.WithHistory(app.Default.History),
	))
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vdev-tools/vdev/internal/app"
	"github.com/vdev-tools/vdev/internal/config"
	"github.com/vdev-tools/vdev/internal/errors"
	"github.com/vdev-tools/vdev/internal/show"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change vdev settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved paths and settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetRepoCmd = &cobra.Command{
	Use:   "set-repo <path>",
	Short: "Set the default Vector repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetRepo,
}

func init() {
	configShowCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text or json)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetRepoCmd)
	rootCmd.AddCommand(configCmd)
}

type configView struct {
	ConfigDir       string `json:"configDir"`
	SettingsFile    string `json:"settingsFile"`
	StateDir        string `json:"stateDir"`
	EnvsDir         string `json:"envsDir"`
	Repo            string `json:"repo"`
	IntegrationsDir string `json:"integrationsDir"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	p := paths()
	view := configView{
		ConfigDir:       p.ConfigDir,
		SettingsFile:    filepath.Join(p.ConfigDir, config.SettingsFileName),
		StateDir:        p.StateDir,
		EnvsDir:         p.EnvsDir,
		Repo:            p.Repo,
		IntegrationsDir: p.IntegrationsDir,
	}

	if format == show.FormatJSON {
		return show.WriteJSON(cmd.OutOrStdout(), view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config dir: %s\n", view.ConfigDir)
	fmt.Fprintf(out, "Settings file: %s\n", view.SettingsFile)
	fmt.Fprintf(out, "State dir: %s\n", view.StateDir)
	fmt.Fprintf(out, "Repository: %s\n", view.Repo)
	fmt.Fprintf(out, "Integrations: %s\n", view.IntegrationsDir)
	return nil
}

func runConfigSetRepo(cmd *cobra.Command, args []string) error {
	repo, err := filepath.Abs(args[0])
	if err != nil {
		return errors.ConfigError("invalid repository path", err)
	}

	info, err := os.Stat(repo)
	if err != nil || !info.IsDir() {
		return errors.ValidationError(fmt.Sprintf("repository %s is not a directory", repo))
	}

	p := paths()
	settings, err := config.LoadSettings(p.ConfigDir)
	if err != nil {
		return errors.ConfigError("failed to load settings", err)
	}
	settings.Repo = repo

	if err := config.SaveSettings(p.ConfigDir, settings); err != nil {
		return errors.ConfigError("failed to save settings", err)
	}

	updated := config.NewPaths(p.ConfigDir, p.StateDir, repo)
	if _, err := os.Stat(updated.IntegrationsDir); err != nil {
		logWarning("%s has no %s directory", repo, config.IntegrationsPath)
	}

	app.SetDefault(app.New(
		app.WithPaths(updated),
		app.WithStore(store()),
		app.WithHistory(app.Default.History),
	))
	logSuccess("Repository set to %s", repo)
	return nil
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"oncall-report/internal/report"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the defaults file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg.Report)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal config")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# Effective configuration (defaults file: %s)\n", cfg.Path)
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the defaults file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		state := "missing"
		if _, err := os.Stat(cfg.Path); err == nil {
			state = "present"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", cfg.Path, state)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the defaults file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return goerr.Wrap(err, "failed to create config directory", goerr.V("path", cfg.Path))
		}
		return report.RunEditor(report.EditorCommand(), cfg.Path)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd, configEditCmd)
}

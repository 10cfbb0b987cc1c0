package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ionut-t/lineedit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lineedit configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Write a YAML file holding every setting with its default value.
Without a path the user config (~/.config/lineedit/config.yaml) is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var forceInit bool

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if dir := config.UserConfigDir(); dir != "" {
		path = filepath.Join(dir, "config.yaml")
	} else {
		path = config.LocalConfigPath
	}

	if !forceInit && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

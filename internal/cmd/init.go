package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cheerioskun/charbrowser/internal/config"
)

var forceInit bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write a configuration file holding the default settings.

The file is written to $HOME/.charbrowser.yaml unless a path is given. An
existing file is left alone unless --force is set.

Examples:
  charbrowser init
  charbrowser init ./charbrowser.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) > 0 {
		target = args[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		target = filepath.Join(home, ".charbrowser.yaml")
	}

	if err := writeDefaultConfig(appFs, target, forceInit); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", target)
	return nil
}

// writeDefaultConfig writes the default settings as YAML to path on fs
func writeDefaultConfig(fs afero.Fs, path string, force bool) error {
	if filepath.Ext(path) == "" {
		return fmt.Errorf("config path %s needs an extension such as .yaml", path)
	}

	if !force {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return fmt.Errorf("failed to check config file: %w", err)
		}
		if exists {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetFs(fs)
	config.SetDefaults(v)
	// Durations marshal as nanoseconds otherwise
	v.Set("api.timeout", v.GetDuration("api.timeout").String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

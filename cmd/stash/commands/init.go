package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stashfs/stashfs/internal/cli/prompt"
	"github.com/stashfs/stashfs/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample StashFS configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/stashfs/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  stash init

  # Initialize with custom path
  stash init --config /etc/stashfs/config.yaml

  # Force overwrite existing config
  stash init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		ok, err := prompt.Confirm(fmt.Sprintf("Configuration file %s exists, overwrite?", configPath), false)
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.GetDefaultConfig()

	// Let the user pick the base directory unless running non-interactively.
	if !initForce {
		baseDir, err := prompt.Input("Storage base directory", cfg.Storage.BaseDir)
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
		cfg.Storage.BaseDir = baseDir
	}

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Save a file with: stash save <path> --file <input>")
	fmt.Printf("  3. Or specify custom config: stash save <path> --config %s\n", configPath)

	return nil
}

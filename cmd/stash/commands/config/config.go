// Package config implements the 'stash config' command group.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for configuration operations.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Inspect and describe the StashFS configuration.`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(schemaCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCommand represents the config parent command.
type ConfigCommand struct{}

// GetCobraCommand returns the cobra command for config operations.
func (c *ConfigCommand) GetCobraCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sysvgen configuration",
	}

	configCmd.AddCommand(
		(&ConfigShowCommand{}).GetCobraCommand(),
	)

	return configCmd
}

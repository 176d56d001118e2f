package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigShowCommand represents the config show command.
type ConfigShowCommand struct{}

// GetCobraCommand returns the cobra command for config show operations.
func (c *ConfigShowCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  "Display the current configuration including defaults and overrides",
		Run: func(_ *cobra.Command, _ []string) {
			output, err := yaml.Marshal(cfg)
			if err != nil {
				fmt.Printf("Error marshalling config: %v\n", err)
				return
			}
			fmt.Println(string(output))
		},
	}
}

// Package cmd provides the command line interface for sysvgen.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/initkit/sysvgen/internal/config"
	"github.com/initkit/sysvgen/internal/log"
)

// RootCommand represents the root command for the sysvgen CLI.
type RootCommand struct{}

var (
	cfg            *config.Settings
	configFilePath string
	initDir        string
	unitDirs       []string
	verbose        bool
)

// GetCobraCommand returns the cobra root command for the sysvgen CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sysvgen",
		Short: "Sysvgen converts systemd service units to LSB SysV init scripts.",
		Long: `Sysvgen converts systemd service unit files to LSB-compliant SysV init
scripts. It translates service types, dependencies, conditions, timeouts and
restart policy into equivalent shell control flow for hosts running SysV init.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if configFilePath != "" {
				config.SetConfigFilePath(configFilePath)
			}
			cfg = config.InitConfig()
			log.Init(verbose)

			if verbose {
				cfg.Verbose = verbose
			}

			if initDir != "" {
				cfg.InitDir = initDir
			}

			if len(unitDirs) > 0 {
				cfg.UnitSearchPaths = unitDirs
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&initDir, "init-dir", "", "Path to the init script directory")
	rootCmd.PersistentFlags().StringSliceVar(&unitDirs, "unit-dir", nil, "Unit file search directories (highest priority first)")

	rootCmd.AddCommand(
		(&ConvertCommand{}).GetCobraCommand(),
		(&InstallCommand{}).GetCobraCommand(),
		(&ListCommand{}).GetCobraCommand(),
		(&DoctorCommand{}).GetCobraCommand(),
		(&ConfigCommand{}).GetCobraCommand(),
		(&VersionCommand{}).GetCobraCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := (&RootCommand{}).GetCobraCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/initkit/sysvgen/internal/fs"
	"github.com/initkit/sysvgen/internal/log"
)

// InstallOptions holds install command options.
type InstallOptions struct {
	Force bool
}

// InstallCommand represents the install command.
type InstallCommand struct{}

// GetCobraCommand returns the cobra command for installing a converted script.
func (c *InstallCommand) GetCobraCommand() *cobra.Command {
	var opts InstallOptions

	installCmd := &cobra.Command{
		Use:   "install <service-file>",
		Short: "Convert a unit and install the init script",
		Long: `Convert a systemd service unit file and install the resulting init script
into the init directory (default /etc/init.d) with execute permissions and
root ownership. Requires root privileges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.Run(args[0], opts)
		},
		SilenceUsage: true,
	}

	installCmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing init script without confirmation")

	return installCmd
}

// Run converts the unit and installs the script into the init directory.
func (c *InstallCommand) Run(unitPath string, opts InstallOptions) error {
	logger := log.GetLogger()
	writer := fs.NewServiceWithLogger(newConfigProvider(), logger)

	// Preflight before converting so a permission problem surfaces
	// without any partial output.
	if err := writer.CheckInstallDir(cfg.InitDir); err != nil {
		return err
	}

	content, serviceName, err := convertFile(unitPath)
	if err != nil {
		return err
	}

	target := writer.InitScriptPath(serviceName)

	if writer.Exists(target) && !opts.Force {
		if !writer.HasScriptChanged(target, content) {
			fmt.Printf("Init script %s is already up to date.\n", target)
			return nil
		}
		if !confirmOverwrite(target) {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	if err := writer.WriteScript(target, content); err != nil {
		return err
	}

	fmt.Printf("Service '%s' installed to %s\n", serviceName, target)

	if err := writer.SetRootOwnership(target); err != nil {
		logger.Warn("Could not set root ownership", "error", err)
		fmt.Println("Warning: could not set root ownership. Run manually:")
		fmt.Printf("  sudo chown root:root %s\n", target)
	}

	fmt.Printf("You can now use: service %s start|stop|status|restart\n", serviceName)
	return nil
}

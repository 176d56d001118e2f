package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/initkit/sysvgen/internal/fs"
	"github.com/initkit/sysvgen/internal/log"
	"github.com/initkit/sysvgen/internal/script"
)

// ConvertOptions holds convert command options.
type ConvertOptions struct {
	Output string
	Force  bool
}

// ConvertCommand represents the convert command.
type ConvertCommand struct{}

// GetCobraCommand returns the cobra command for converting a unit file.
func (c *ConvertCommand) GetCobraCommand() *cobra.Command {
	var opts ConvertOptions

	convertCmd := &cobra.Command{
		Use:   "convert <service-file>",
		Short: "Convert a systemd service unit to a SysV init script",
		Long: `Convert a systemd service unit file to an LSB-compliant SysV init script.
Without --output the script is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.Run(args[0], opts)
		},
		SilenceUsage: true,
	}

	convertCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file path (written with execute permissions)")
	convertCmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing output file without confirmation")

	return convertCmd
}

// Run executes the conversion and writes or prints the result.
func (c *ConvertCommand) Run(unitPath string, opts ConvertOptions) error {
	content, serviceName, err := convertFile(unitPath)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		fmt.Print(content)
		return nil
	}

	writer := fs.NewServiceWithLogger(newConfigProvider(), log.GetLogger())

	if writer.Exists(opts.Output) && !opts.Force {
		if !confirmOverwrite(opts.Output) {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	if err := writer.WriteScript(opts.Output, content); err != nil {
		return err
	}

	fmt.Printf("Init script written to %s with execute permissions\n", opts.Output)
	printInstallHint(opts.Output, serviceName)
	return nil
}

// convertFile loads a unit file from disk and renders its init script.
// The returned name is the service name the script provides.
func convertFile(unitPath string) (content, serviceName string, err error) {
	raw, err := os.ReadFile(unitPath) //nolint:gosec // Converting user-named input files is the tool's purpose
	if err != nil {
		return "", "", fmt.Errorf("reading service file %s: %w", unitPath, err)
	}

	baseName := filepath.Base(unitPath)
	content, err = script.Convert(raw, baseName)
	if err != nil {
		return "", "", err
	}

	return content, serviceNameOf(baseName), nil
}

// serviceNameOf strips the .service suffix from a unit file base name.
func serviceNameOf(baseName string) string {
	if filepath.Ext(baseName) == ".service" {
		return baseName[:len(baseName)-len(".service")]
	}
	return baseName
}

// printInstallHint tells the user how to activate a script converted
// to a path outside the init directory.
func printInstallHint(outputPath, serviceName string) {
	installed := filepath.Join(cfg.InitDir, serviceName)
	if outputPath == installed {
		return
	}

	fmt.Println()
	fmt.Println("To install this service, run:")
	fmt.Printf("  sudo cp %s %s\n", outputPath, installed)
	fmt.Printf("  sudo chown root:root %s\n", installed)
	fmt.Printf("  sudo chmod 755 %s\n", installed)
	fmt.Println()
	fmt.Printf("Then you can use: service %s start|stop|status|restart\n", serviceName)
}

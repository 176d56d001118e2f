package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/initkit/sysvgen/internal/discovery"
	"github.com/initkit/sysvgen/internal/log"
)

// ListCommand represents the list command.
type ListCommand struct{}

// GetCobraCommand returns the cobra command for listing discovered units.
func (c *ListCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List systemd service units found on this system",
		Long: `List all systemd service unit files discovered under the configured
search directories and their .wants/.requires subdirectories.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.Run()
		},
		SilenceUsage: true,
	}
}

// Run discovers unit files and renders them as a table.
func (c *ListCommand) Run() error {
	finder := discovery.NewFinder(cfg.UnitSearchPaths, log.GetLogger())

	services, err := finder.Find()
	if err != nil {
		return fmt.Errorf("error discovering service files: %w", err)
	}

	if len(services) == 0 {
		fmt.Println("No systemd service files found on this system.")
		return nil
	}

	fmt.Printf("Found %d systemd service files:\n\n", len(services))

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	caser := cases.Title(language.English)

	tbl := table.New("Service Name", "Kind", "Path")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, svc := range services {
		tbl.AddRow(svc.Name, caser.String(unitKind(svc.Name)), svc.Path)
	}
	tbl.Print()

	return nil
}

// unitKind classifies a unit file name for display.
func unitKind(name string) string {
	if strings.Contains(name, "@") {
		return "template"
	}
	return "service"
}

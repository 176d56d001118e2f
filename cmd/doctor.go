package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/initkit/sysvgen/internal/fs"
	"github.com/initkit/sysvgen/internal/log"
	"github.com/initkit/sysvgen/internal/validate"
)

// CheckResult represents the result of a diagnostic check.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// DoctorCommand represents the doctor command.
type DoctorCommand struct{}

// GetCobraCommand returns the cobra command for doctor operations.
func (c *DoctorCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that this host can run generated init scripts",
		Long: `Check that this host has the SysV plumbing the generated scripts rely on:
the LSB init-functions library, start-stop-daemon, and a writable init
directory for installs.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.Run()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

// Run executes all diagnostic checks and reports the results.
func (c *DoctorCommand) Run() error {
	logger := log.GetLogger()

	var results []CheckResult

	validator := validate.NewValidatorWithDefaults(logger)
	if err := validator.SystemRequirements(); err != nil {
		results = append(results, CheckResult{Name: "System requirements", Passed: false, Message: err.Error()})
	} else {
		results = append(results, CheckResult{Name: "System requirements", Passed: true, Message: "LSB init tooling available"})
	}

	writer := fs.NewServiceWithLogger(newConfigProvider(), logger)
	if err := writer.CheckInstallDir(cfg.InitDir); err != nil {
		results = append(results, CheckResult{Name: "Init directory", Passed: false, Message: err.Error()})
	} else {
		results = append(results, CheckResult{Name: "Init directory", Passed: true, Message: fmt.Sprintf("%s is writable", cfg.InitDir)})
	}

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	failureCount := 0
	for _, result := range results {
		marker := pass("ok")
		if !result.Passed {
			marker = fail("fail")
			failureCount++
		}
		fmt.Printf("[%s] %s: %s\n", marker, result.Name, result.Message)
	}

	if failureCount > 0 {
		return fmt.Errorf("%d of %d checks failed", failureCount, len(results))
	}

	fmt.Println("\nAll checks passed.")
	return nil
}

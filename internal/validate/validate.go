// Package validate provides host preflight checks for sysvgen.
package validate

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/initkit/sysvgen/internal/execx"
	"github.com/initkit/sysvgen/internal/log"
)

// initFunctions is sourced by every generated script; a host without
// it cannot run them.
const initFunctions = "/lib/lsb/init-functions"

// Validator checks that a host has the SysV plumbing the generated
// scripts rely on at runtime.
type Validator struct {
	logger   log.Logger
	runner   execx.Runner
	osGetter func() string // For testing, defaults to runtime.GOOS
	statFunc func(string) (os.FileInfo, error)
}

// NewValidator creates a new Validator with the provided logger and command runner.
func NewValidator(logger log.Logger, runner execx.Runner) *Validator {
	return &Validator{
		logger:   logger,
		runner:   runner,
		osGetter: func() string { return runtime.GOOS },
		statFunc: os.Stat,
	}
}

// NewValidatorWithDefaults creates a new Validator with default dependencies.
func NewValidatorWithDefaults(logger log.Logger) *Validator {
	return NewValidator(logger, execx.NewRealRunner())
}

// WithOSGetter sets a custom OS getter for testing.
func (v *Validator) WithOSGetter(osGetter func() string) *Validator {
	v.osGetter = osGetter
	return v
}

// WithStatFunc sets a custom stat function for testing.
func (v *Validator) WithStatFunc(statFunc func(string) (os.FileInfo, error)) *Validator {
	v.statFunc = statFunc
	return v
}

// SystemRequirements checks that the host can run the scripts sysvgen
// generates: Linux, the LSB init-functions library, and
// start-stop-daemon on PATH.
func (v *Validator) SystemRequirements() error {
	ctx := context.Background()

	if goos := v.osGetter(); goos != "linux" {
		return fmt.Errorf("unsupported platform: %s (generated init scripts target Linux SysV init)", goos)
	}

	v.logger.Debug("Validating LSB init-functions availability")

	if _, err := v.statFunc(initFunctions); err != nil {
		return fmt.Errorf("%s not found (install the lsb-base package): %w", initFunctions, err)
	}

	v.logger.Debug("Validating start-stop-daemon availability")

	if _, err := v.runner.CombinedOutput(ctx, "start-stop-daemon", "--help"); err != nil {
		return fmt.Errorf("start-stop-daemon not found: %w", err)
	}

	return nil
}

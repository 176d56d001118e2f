// Package fs provides file system operations for init script installation.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/initkit/sysvgen/internal/config"
	"github.com/initkit/sysvgen/internal/log"
)

// Init scripts must be executable by init and readable by everyone.
const scriptMode = 0755

// Service provides file system operations with configurable paths.
type Service struct {
	configProvider config.Provider
	logger         log.Logger
}

// NewService creates a new filesystem service with the given config provider.
func NewService(configProvider config.Provider) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         log.NewLogger(configProvider.GetConfig().Verbose),
	}
}

// NewServiceWithLogger creates a new filesystem service with explicit logger injection.
func NewServiceWithLogger(configProvider config.Provider, logger log.Logger) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         logger,
	}
}

// InitScriptPath returns the installation path for a service's init script.
func (s *Service) InitScriptPath(serviceName string) string {
	return filepath.Join(s.configProvider.GetConfig().InitDir, serviceName)
}

// Exists reports whether a file already exists at the path.
func (s *Service) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// HasScriptChanged checks if the content of an init script has changed.
func (s *Service) HasScriptChanged(path, content string) bool {
	existingContent, err := os.ReadFile(path) //nolint:gosec // Path is constructed from config, not user-controlled
	if err != nil {
		// File doesn't exist or can't be read, so it has changed
		return true
	}

	if string(existingContent) == content {
		s.logger.Debug("Script unchanged, skipping", "path", path)
		return false
	}

	return true
}

// CheckInstallDir verifies the install directory exists and is
// writable before any conversion output is produced.
func (s *Service) CheckInstallDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("install directory %s does not exist: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("install path %s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".sysvgen-*")
	if err != nil {
		return fmt.Errorf("install directory %s is not writable (root privileges required?): %w", dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	return nil
}

// WriteScript writes script content to the given path with execute
// permissions.
func (s *Service) WriteScript(path, content string) error {
	s.logger.Debug("Writing init script", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create script directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), scriptMode); err != nil {
		return fmt.Errorf("failed to write init script: %w", err)
	}

	// WriteFile only applies the mode on creation.
	return os.Chmod(path, scriptMode)
}

// SetRootOwnership assigns root:root ownership to an installed script.
// Callers treat failure as a warning, not an error: the script is
// already in place and a manual chown fixes it.
func (s *Service) SetRootOwnership(path string) error {
	if err := os.Chown(path, 0, 0); err != nil {
		return fmt.Errorf("failed to set root ownership on %s: %w", path, err)
	}
	return nil
}

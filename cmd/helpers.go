package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/initkit/sysvgen/internal/config"
)

// newConfigProvider wraps the resolved CLI configuration in a Provider
// for the internal services.
func newConfigProvider() config.Provider {
	provider := config.NewDefaultConfigProvider()
	provider.SetConfig(cfg)
	return provider
}

// confirmOverwrite asks the user before replacing an existing file.
// Only "y" or "yes" proceeds.
func confirmOverwrite(path string) bool {
	fmt.Printf("Warning: File %s already exists and will be overwritten.\n", path)
	fmt.Print("Continue? (y/N): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

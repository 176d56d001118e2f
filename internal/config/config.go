// Package config provides configuration management for sysvgen.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() *Settings
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg *Settings
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

var defaultProvider = NewDefaultConfigProvider()

// Default configuration values for sysvgen. Unit search paths mirror
// the priority-ordered list systemd itself consults, earlier entries
// winning on duplicate service names.
const (
	DefaultInitDir = "/etc/init.d"
	DefaultVerbose = false
)

// DefaultUnitSearchPaths is the priority-ordered list of directories
// scanned for service unit files.
var DefaultUnitSearchPaths = []string{
	"/etc/systemd/system",
	"/lib/systemd/system",
	"/usr/lib/systemd/system",
	"/usr/local/lib/systemd/system",
	"/run/systemd/system",
}

// Settings represents the configuration for sysvgen. It contains the
// unit file search paths, the init script installation directory, and
// verbosity.
type Settings struct {
	UnitSearchPaths []string `yaml:"unitSearchPaths"`
	InitDir         string   `yaml:"initDir"`
	Verbose         bool     `yaml:"verbose"`
}

// Implementation of Provider methods for defaultConfigProvider

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	viper.SetConfigFile(path)
}

func (p *defaultConfigProvider) InitConfig() *Settings {
	p.cfg = initConfigInternal()
	return p.cfg
}

// For convenience - pass through to default provider

// SetConfig sets the application configuration.
func SetConfig(c *Settings) {
	defaultProvider.SetConfig(c)
}

// GetConfig returns the current application configuration.
func GetConfig() *Settings {
	return defaultProvider.GetConfig()
}

// SetConfigFilePath sets the configuration file path.
func SetConfigFilePath(p string) {
	defaultProvider.SetConfigFilePath(p)
}

// InitConfig initializes the application configuration.
func InitConfig() *Settings {
	return defaultProvider.InitConfig()
}

// Internal function to initialize configuration.
func initConfigInternal() *Settings {
	cfg := &Settings{
		UnitSearchPaths: DefaultUnitSearchPaths,
		InitDir:         DefaultInitDir,
		Verbose:         DefaultVerbose,
	}

	viper.SetDefault("unitSearchPaths", DefaultUnitSearchPaths)
	viper.SetDefault("initDir", DefaultInitDir)
	viper.SetDefault("verbose", DefaultVerbose)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(os.ExpandEnv("$HOME/.config/sysvgen"))
	viper.AddConfigPath("/etc/sysvgen")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		panic(err)
	}

	return cfg
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sambabib/ncu-helper/pkg/filter"
	"github.com/sambabib/ncu-helper/pkg/generator"
	"github.com/sambabib/ncu-helper/pkg/prefs"
)

// FileName is the per-project config file looked up from the working directory upwards.
const FileName = ".ncu-helper.yaml"

// Config represents the configuration for ncu-helper
type Config struct {
	// Defaults used for any preference the user has not stored yet
	Defaults struct {
		PackageManager string   `yaml:"packageManager"` // npm or yarn
		UpgradeVersion string   `yaml:"upgradeVersion"` // major, minor or patch
		IgnorePackages []string `yaml:"ignorePackages"`
		BumpLockfile   bool     `yaml:"bumpLockfile"`
		Deep           bool     `yaml:"deep"`
	} `yaml:"defaults"`

	// Where preferences are persisted
	Preferences struct {
		Path string `yaml:"path"` // Default: $XDG_CONFIG_HOME/ncu-helper/preferences.json
	} `yaml:"preferences"`

	// Output configuration
	Output struct {
		Format string `yaml:"format"` // text or json
		Copy   bool   `yaml:"copy"`   // also copy the output to the clipboard
	} `yaml:"output"`

	// path of the file this config was read from, empty for defaults
	source string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{}

	config.Defaults.PackageManager = string(generator.NPM)
	config.Defaults.UpgradeVersion = string(filter.CapMajor)
	config.Defaults.IgnorePackages = []string{}

	config.Output.Format = "text"

	return config
}

// LoadConfig loads the configuration from the specified file path
// If no path is provided, it looks for .ncu-helper.yaml in the current directory
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = FileName
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	return readConfig(configPath)
}

// FindAndLoadConfig searches for a config file in the project directory and its parents
func FindAndLoadConfig(projectPath string) (*Config, error) {
	currentDir, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("error resolving %s: %w", projectPath, err)
	}

	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return readConfig(configPath)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return DefaultConfig(), nil
}

func readConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	config.source = configPath
	return config, nil
}

// Validate checks the enum-valued settings.
func (c *Config) Validate() error {
	if _, err := generator.ParsePackageManager(c.Defaults.PackageManager); err != nil {
		return err
	}
	if _, err := filter.ParseCap(c.Defaults.UpgradeVersion); err != nil {
		return err
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output.Format)
	}
	return nil
}

// Source returns the file the config was loaded from, or "" for built-in defaults.
func (c *Config) Source() string {
	return c.source
}

// IsPackageIgnored checks if a package is ignored by default
func (c *Config) IsPackageIgnored(packageName string) bool {
	for _, ignoredPackage := range c.Defaults.IgnorePackages {
		if ignoredPackage == packageName {
			return true
		}
	}
	return false
}

// PreferenceDefaults converts the defaults section into preferences. Values
// were checked by Validate when the file was read.
func (c *Config) PreferenceDefaults() prefs.Preferences {
	ignored := c.Defaults.IgnorePackages
	if ignored == nil {
		ignored = []string{}
	}
	return prefs.Preferences{
		PackageManager: generator.PackageManager(c.Defaults.PackageManager),
		SeverityCap:    filter.Cap(c.Defaults.UpgradeVersion),
		IgnoredLibs:    ignored,
		BumpLockfile:   c.Defaults.BumpLockfile,
		Deep:           c.Defaults.Deep,
	}
}

// PreferencesPath returns the configured preferences file, or the default location.
func (c *Config) PreferencesPath() (string, error) {
	if c.Preferences.Path == "" {
		return prefs.DefaultPath()
	}
	path := os.ExpandEnv(c.Preferences.Path)
	if len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}

// Package configpaths locates ioc2chcfg configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName is the directory and base file name used for configuration.
const AppName = "ioc2chcfg"

// SystemDir holds system-wide configuration on unix systems.
const SystemDir = "/etc/" + AppName

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, AppName), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", AppName), nil
		}
		return "", errors.New("HOME not set")
	}
}

// Extension returns the file extension of a configuration format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// DefaultNamedConfigPath returns the default path of the configuration
// file with the given base name (e.g. "convert") and format.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName+"."+Extension(format)), nil
}

// EnsureDir creates the parent directory of filePath.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// Candidates holds configuration file candidates per loader.
type Candidates struct {
	JSON []string
	YAML []string
	TOML []string
}

func (c *Candidates) add(dir, base string) {
	p := filepath.Join(dir, base)
	c.JSON = append(c.JSON, p+".json")
	c.YAML = append(c.YAML, p+".yaml", p+".yml")
	c.TOML = append(c.TOML, p+".toml")
}

// ConfigCandidatePaths builds the configuration file candidates for the
// given base names, in priority order: userPath, the working directory,
// the user configuration directory and the system directory. userPath is
// routed to a loader by its extension.
func ConfigCandidatePaths(userPath string, baseNames ...string) Candidates {
	var c Candidates
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			c.YAML = append(c.YAML, userPath)
		case ".toml":
			c.TOML = append(c.TOML, userPath)
		default:
			c.JSON = append(c.JSON, userPath)
		}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, SystemDir)
	}
	for _, dir := range dirs {
		for _, base := range baseNames {
			c.add(dir, base)
		}
	}
	return c
}

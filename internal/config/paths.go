package config

import (
	"os"
	"path/filepath"
)

// EnvConfig overrides the config file location.
const EnvConfig = "BOILRKIT_CONFIG"

// Paths contains standard filesystem paths for boilrkit.
type Paths struct {
	// HomeDir is the boilrkit home directory (~/.boilrkit).
	HomeDir string

	// ConfigFile is the path to the config file (~/.boilrkit/config.yaml).
	ConfigFile string

	// LegacyConfigFile is the JSON config read when ConfigFile is absent
	// (~/.boilrkitrc).
	LegacyConfigFile string

	// TemplatesDir is the home-directory template fallback
	// (~/.boilrkit/templates).
	TemplatesDir string
}

// DefaultPaths returns the default paths for boilrkit.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	boilrkitHome := filepath.Join(homeDir, ".boilrkit")

	return &Paths{
		HomeDir:          boilrkitHome,
		ConfigFile:       filepath.Join(boilrkitHome, "config.yaml"),
		LegacyConfigFile: filepath.Join(homeDir, ".boilrkitrc"),
		TemplatesDir:     filepath.Join(boilrkitHome, "templates"),
	}, nil
}

// GetConfigFile returns the config file path.
// If BOILRKIT_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

// AbsPath expands ~ and makes path absolute. Empty stays empty.
func AbsPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	return filepath.Abs(expanded)
}

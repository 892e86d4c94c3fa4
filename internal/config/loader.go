package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/boilrkit/cli/internal/errors"
)

// Environment variable prefix for boilrkit configuration.
const envPrefix = "BOILRKIT"

// Environment variables consulted for template source settings.
const (
	EnvTemplatesRepo   = "BOILRKIT_TEMPLATES_REPO"
	EnvTemplatesBranch = "BOILRKIT_TEMPLATES_BRANCH"
	EnvTemplatesPath   = "BOILRKIT_TEMPLATES_PATH"
	EnvGitToken        = "BOILRKIT_GIT_TOKEN"
)

// Loader handles loading configuration from a file and the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Only credentials are read through viper. Template source variables are
	// resolved by ResolveOptions so their precedence can be reported.
	_ = v.BindEnv("git.token", EnvGitToken)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, the default path is used, and when that does not
// exist the legacy ~/.boilrkitrc JSON file is tried. A missing file is not
// an error. A file that cannot be parsed is a source configuration error.
func (l *Loader) Load(configFile string) (*Config, error) {
	explicit := configFile != ""
	if !explicit {
		var err error
		configFile, err = l.defaultFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	var cfg Config
	if expandedPath != "" {
		l.v.SetConfigFile(expandedPath)
		l.v.SetConfigType(configType(expandedPath))

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, oerrors.NewSourceConfigError(
					fmt.Sprintf("reading config file: %v", err),
					expandedPath,
					"Fix the file or regenerate it with 'boilrkit config init --force'.",
				)
			}
		} else {
			cfg.Path = expandedPath
		}
	}

	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, oerrors.NewSourceConfigError(
			fmt.Sprintf("decoding config file: %v", err),
			expandedPath,
			"Check the value types in the templates, defaults and log sections.",
		)
	}

	return &cfg, nil
}

// defaultFile returns the config file to read when none was given: the
// default (or BOILRKIT_CONFIG) path when it exists, else the legacy file
// when that exists, else the default path.
func (l *Loader) defaultFile() (string, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return "", err
	}
	if os.Getenv(EnvConfig) != "" {
		return configFile, nil
	}

	if exists, _ := ConfigFileExists(configFile); exists {
		return configFile, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	if exists, _ := ConfigFileExists(paths.LegacyConfigFile); exists {
		return paths.LegacyConfigFile, nil
	}

	return configFile, nil
}

// configType picks the viper decoder for path. The legacy file has no
// extension and is JSON.
func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".boilrkitrc":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

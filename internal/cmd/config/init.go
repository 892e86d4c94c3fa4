package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/config"
	oerrors "github.com/boilrkit/cli/internal/errors"
)

// configHeader is prepended to the generated file.
const configHeader = `# boilrkit CLI configuration
#
# templates: where project templates are fetched from. repo is an owner/name
#   slug or a clone URL; path is the local cache directory (default: a
#   folder under the system temp dir).
# defaults: features enabled when no flag is given, and the entry view
#   template name. Ignored with --minimal.
# git.token: password for private template repositories (env: BOILRKIT_GIT_TOKEN).

`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new boilrkit configuration file",
		Long: `Create a new boilrkit configuration file with default values.

The configuration file is created at ~/.boilrkit/config.yaml by default.
Use --config flag to specify a different location.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, forceFlag)
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	configFile, err := configFilePath(cfg)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	exists, err := config.ConfigFileExists(configFile)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}

	if exists && !force {
		return oerrors.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", configFile),
			cmdtypes.ExitGeneralError,
		)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	// The file may hold a git token.
	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", configFile)
	return nil
}

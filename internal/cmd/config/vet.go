package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/config"
	oerrors "github.com/boilrkit/cli/internal/errors"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the boilrkit configuration file",
		Long: `Validate the boilrkit configuration file.

The file is parsed and the template source (repository, branch, cache path)
and default template name are checked. The configuration file at
~/.boilrkit/config.yaml is validated by default; the legacy ~/.boilrkitrc is
used when it is the only one present. Use --config flag to specify a
different location.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	// Same lookup as the loader so the legacy file is vetted when it is the
	// one in use.
	configFile := ""
	if cfg.ConfigPath != "" {
		var err error
		configFile, err = configFilePath(cfg)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
	}

	loaded, err := config.ValidateFile(configFile)
	if loaded != nil && loaded.Path == "" {
		shown := configFile
		if shown == "" {
			shown, _ = configFilePath(cfg)
		}
		return oerrors.NewExitError(
			oerrors.NewNotFoundError("config file not found", shown,
				"Run 'boilrkit config init' to create one."),
			cmdtypes.ExitNotFound,
		)
	}

	if err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", loaded.Path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err, Printed: true}
		}

		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			fmt.Fprint(c.ErrOrStderr(), detail.Error())
			return &cmdtypes.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", loaded.Path)
	return nil
}

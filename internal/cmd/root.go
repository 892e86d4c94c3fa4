// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/cmd/config"
	"github.com/boilrkit/cli/internal/cmd/templates"
	"github.com/boilrkit/cli/internal/cmdtypes"
	configpkg "github.com/boilrkit/cli/internal/config"
	"github.com/boilrkit/cli/internal/output"
)

// NewRootCmd creates the root command for the boilrkit CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cmdtypes.GlobalConfig{})
}

// newRootCmd builds the command tree around cfg. Tests pass a GlobalConfig
// carrying a stub Git client and fallback directories.
func newRootCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "boilrkit",
		Short: "Scaffold React projects from a feature-gated template repository",
		Long: `boilrkit creates new React projects from a shared template repository.

Template folders are copied into the project according to the selected
features, the entry view is chosen per routing mode, and extensionless
source files are given a .tsx, .ts or .js extension by content.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			var timestamps *bool
			if c.Flags().Changed("timestamps") {
				timestamps = output.BoolPtr(timestampsFlag)
			}
			initializeGlobals(cfg, configFlag, verboseFlag, timestamps)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BOILRKIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewCreateCmd(cfg))
	rootCmd.AddCommand(templates.NewTemplatesCmd(cfg))
	rootCmd.AddCommand(config.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads the config file into cfg and sets up logging.
// A config that fails to load is kept in cfg.LoadErr rather than returned
// so that commands which do not need it still run.
func initializeGlobals(cfg *cmdtypes.GlobalConfig, configFlag string, verbose bool, timestamps *bool) {
	cfg.ConfigPath = configFlag
	cfg.Verbose = verbose

	loaded, err := configpkg.NewLoader().Load(configFlag)
	if err != nil {
		cfg.LoadErr = err
		loaded = &configpkg.Config{}
	}
	cfg.Config = loaded

	output.SetupLogging(output.LogConfig{
		Verbose:    verbose,
		Timestamps: configpkg.ResolveTimestamps(timestamps, loaded),
	})

	if err != nil {
		output.Debug("config load error", "error", err)
	}
	if verbose {
		output.Debug("initializing CLI", "config", loaded.Path)
	}
}

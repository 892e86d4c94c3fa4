// Package cmdutil provides shared command utilities for the create and
// templates commands. It centralizes flag groups, option resolution, engine
// construction and result output.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/config"
	"github.com/boilrkit/cli/internal/features"
)

// SourceFlags holds flags that select the template repository
// (create, templates fetch, templates list).
type SourceFlags struct {
	Repo     string
	Branch   string
	CacheDir string
}

// AddTo registers the source flags on the given cobra command.
func (f *SourceFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Repo, "repo", "",
		"Template repository, owner/name or clone URL (env: BOILRKIT_TEMPLATES_REPO)")
	cmd.Flags().StringVar(&f.Branch, "branch", "",
		"Template branch (env: BOILRKIT_TEMPLATES_BRANCH)")
	cmd.Flags().StringVar(&f.CacheDir, "cache-dir", "",
		"Local template cache directory (env: BOILRKIT_TEMPLATES_PATH)")
}

// FeatureFlags holds the optional feature switches (create, templates list).
type FeatureFlags struct {
	Router   bool
	Firebase bool
	AI       bool
	PWA      bool
	Payment  bool
	Template string
	Minimal  bool
}

// featureFlagNames maps each feature to its command-line flag name.
var featureFlagNames = map[features.Flag]string{
	features.FlagRouter:   "router",
	features.FlagFirebase: "firebase",
	features.FlagAI:       "ai",
	features.FlagPWA:      "pwa",
	features.FlagPayment:  "payment",
}

// AddTo registers the feature flags on the given cobra command.
func (f *FeatureFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.Router, "router", "r", false, "Include routing")
	cmd.Flags().BoolVarP(&f.Firebase, "firebase", "f", false, "Include Firebase")
	cmd.Flags().BoolVarP(&f.AI, "ai", "a", false, "Include AI helpers")
	cmd.Flags().BoolVarP(&f.PWA, "pwa", "p", false, "Include PWA support")
	cmd.Flags().BoolVarP(&f.Payment, "payment", "s", false, "Include payments")
	cmd.Flags().StringVarP(&f.Template, "template", "t", "",
		"Entry view template name (default from config, else App)")
	cmd.Flags().BoolVar(&f.Minimal, "minimal", false,
		"Ignore feature defaults from the config file")
}

// Explicit returns the feature flags the user set on cmd. Flags left at
// their default are absent so lower precedence layers apply.
func (f *FeatureFlags) Explicit(cmd *cobra.Command) map[features.Flag]bool {
	values := map[features.Flag]bool{
		features.FlagRouter:   f.Router,
		features.FlagFirebase: f.Firebase,
		features.FlagAI:       f.AI,
		features.FlagPWA:      f.PWA,
		features.FlagPayment:  f.Payment,
	}

	explicit := make(map[features.Flag]bool)
	for flag, name := range featureFlagNames {
		if cmd.Flags().Changed(name) {
			explicit[flag] = values[flag]
		}
	}
	return explicit
}

// ResolveOptions merges the global config, the environment and the given
// flags into the options for one run. A nil FeatureFlags means the command
// has no feature flags.
func ResolveOptions(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, sf *SourceFlags, ff *FeatureFlags) (config.ResolvedOptions, error) {
	flags := config.Flags{
		Repo:     sf.Repo,
		Branch:   sf.Branch,
		CacheDir: sf.CacheDir,
	}
	if ff != nil {
		flags.Template = ff.Template
		flags.Features = ff.Explicit(cmd)
		flags.Minimal = ff.Minimal
	}

	resolved, err := config.ResolveOptions(config.ResolveOptionsInput{
		Config: cfg.Config,
		Flags:  flags,
	})
	if err != nil {
		return config.ResolvedOptions{}, err
	}

	if cfg.Verbose {
		config.LogResolvedValues(resolved.Values())
	}

	return resolved, nil
}

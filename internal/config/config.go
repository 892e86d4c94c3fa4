// Package config provides configuration loading and management.
package config

import (
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/source"
)

// TemplatesConfig selects the template repository.
type TemplatesConfig struct {
	// Repo is an owner/name slug or a clone URL.
	// Env: BOILRKIT_TEMPLATES_REPO, Default: jjwprotozoa/boilrkit-templates
	Repo string `mapstructure:"repo" yaml:"repo,omitempty"`

	// Branch is the branch to check out.
	// Env: BOILRKIT_TEMPLATES_BRANCH, Default: main
	Branch string `mapstructure:"branch" yaml:"branch,omitempty"`

	// Path is the local cache directory for the checkout.
	// Env: BOILRKIT_TEMPLATES_PATH, Default: <tmp>/boilrkit-templates
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// DefaultsConfig holds feature defaults applied when no flag is given.
// A nil field means unset.
type DefaultsConfig struct {
	Router   *bool  `mapstructure:"router" yaml:"router,omitempty"`
	Firebase *bool  `mapstructure:"firebase" yaml:"firebase,omitempty"`
	AI       *bool  `mapstructure:"ai" yaml:"ai,omitempty"`
	PWA      *bool  `mapstructure:"pwa" yaml:"pwa,omitempty"`
	Payment  *bool  `mapstructure:"payment" yaml:"payment,omitempty"`
	Template string `mapstructure:"template" yaml:"template,omitempty"`
}

// Feature returns the configured default for f, or nil when unset.
func (d DefaultsConfig) Feature(f features.Flag) *bool {
	switch f {
	case features.FlagRouter:
		return d.Router
	case features.FlagFirebase:
		return d.Firebase
	case features.FlagAI:
		return d.AI
	case features.FlagPWA:
		return d.PWA
	case features.FlagPayment:
		return d.Payment
	default:
		return nil
	}
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// GitConfig contains credentials for private template repositories.
type GitConfig struct {
	// Token is used as the HTTP basic auth password.
	// Env: BOILRKIT_GIT_TOKEN
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

// Config represents the boilrkit CLI configuration.
// Loaded from ~/.boilrkit/config.yaml, or the legacy ~/.boilrkitrc JSON file.
type Config struct {
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates"`
	Defaults  DefaultsConfig  `mapstructure:"defaults" yaml:"defaults"`
	Log       LogConfig       `mapstructure:"log" yaml:"log,omitempty"`
	Git       GitConfig       `mapstructure:"git" yaml:"git,omitempty"`

	// Path is the file the configuration was read from. Empty when no file
	// exists and built-in defaults apply.
	Path string `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `boilrkit config init` to generate the initial config file.
func DefaultConfig() *Config {
	off := func() *bool { b := false; return &b }
	on := true

	return &Config{
		Templates: TemplatesConfig{
			Repo:   source.DefaultRepository,
			Branch: source.DefaultBranch,
		},
		Defaults: DefaultsConfig{
			Router:   off(),
			Firebase: off(),
			AI:       off(),
			PWA:      off(),
			Payment:  off(),
			Template: features.DefaultTemplate,
		},
		Log: LogConfig{
			Timestamps: &on,
		},
	}
}

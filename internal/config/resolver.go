package config

import (
	"os"
	"sort"
	"strconv"

	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/output"
	"github.com/boilrkit/cli/internal/source"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceOverride indicates value was supplied by the calling code.
	SourceOverride ConfigSource = "override"
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the winning value of one key and the lower
// precedence values it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// Flags holds command-line values. Empty strings and absent map entries
// mean the flag was not given.
type Flags struct {
	Repo     string
	Branch   string
	CacheDir string
	Template string

	// Features holds only the feature flags given explicitly.
	Features map[features.Flag]bool

	// Minimal disables every feature not enabled by a flag or override.
	Minimal bool
}

// Overrides are values set by calling code. They win over everything.
type Overrides struct {
	Source   source.Partial
	Features map[features.Flag]bool
}

// ResolveOptionsInput gathers every layer for ResolveOptions.
type ResolveOptionsInput struct {
	Config    *Config
	Flags     Flags
	Overrides Overrides

	// Getenv reads the environment. Nil means os.Getenv.
	Getenv func(string) string
}

// ResolvedOptions is the immutable result of merging defaults, config file,
// environment, flags and overrides. It is built once per run and passed
// explicitly to the engine.
type ResolvedOptions struct {
	Source   source.TemplateSource
	Features features.OptionSet
	GitToken string

	values []ResolvedValue
}

// Values returns the resolution record of every key, sorted by key.
func (r ResolvedOptions) Values() []ResolvedValue {
	return append([]ResolvedValue(nil), r.values...)
}

// Value returns the resolution record of key.
func (r ResolvedOptions) Value(key string) (ResolvedValue, bool) {
	for _, v := range r.values {
		if v.Key == key {
			return v, true
		}
	}
	return ResolvedValue{}, false
}

// layer is one candidate value for a key.
type layer struct {
	source ConfigSource
	value  string
	set    bool
}

func str(source ConfigSource, value string) layer {
	return layer{source: source, value: value, set: value != ""}
}

func boolPtr(source ConfigSource, value *bool) layer {
	if value == nil {
		return layer{source: source}
	}
	return layer{source: source, value: strconv.FormatBool(*value), set: true}
}

func boolMap(source ConfigSource, m map[features.Flag]bool, f features.Flag) layer {
	v, ok := m[f]
	if !ok {
		return layer{source: source}
	}
	return layer{source: source, value: strconv.FormatBool(v), set: true}
}

// resolve picks the first set layer. Layers are ordered highest precedence
// first. Set layers below the winner are recorded as shadowed.
func resolve(key string, layers ...layer) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, l := range layers {
		if !l.set {
			continue
		}
		if rv.Source == "" {
			rv.Value = l.value
			rv.Source = l.source
			continue
		}
		rv.Shadowed[l.source] = l.value
	}
	return rv
}

// ResolveOptions resolves the template source and feature options using
// precedence: (1) overrides, (2) flags, (3) environment, (4) config file,
// (5) built-in defaults. Features have no environment layer. With
// Flags.Minimal the config file layer is ignored for features.
func ResolveOptions(in ResolveOptionsInput) (ResolvedOptions, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = &Config{}
	}
	getenv := in.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	var values []ResolvedValue

	repo := resolve("templates.repo",
		str(SourceOverride, in.Overrides.Source.Repository),
		str(SourceFlag, in.Flags.Repo),
		str(SourceEnv, getenv(EnvTemplatesRepo)),
		str(SourceConfig, cfg.Templates.Repo),
		str(SourceDefault, source.DefaultRepository),
	)
	branch := resolve("templates.branch",
		str(SourceOverride, in.Overrides.Source.Branch),
		str(SourceFlag, in.Flags.Branch),
		str(SourceEnv, getenv(EnvTemplatesBranch)),
		str(SourceConfig, cfg.Templates.Branch),
		str(SourceDefault, source.DefaultBranch),
	)
	path := resolve("templates.path",
		str(SourceOverride, in.Overrides.Source.LocalCachePath),
		str(SourceFlag, in.Flags.CacheDir),
		str(SourceEnv, getenv(EnvTemplatesPath)),
		str(SourceConfig, cfg.Templates.Path),
		str(SourceDefault, source.DefaultCachePath()),
	)
	values = append(values, repo, branch, path)

	cachePath, err := AbsPath(path.Value)
	if err != nil {
		return ResolvedOptions{}, err
	}

	opts := features.OptionSet{}
	for _, f := range features.AllFlags() {
		configLayer := boolPtr(SourceConfig, cfg.Defaults.Feature(f))
		if in.Flags.Minimal {
			configLayer = layer{source: SourceConfig}
		}

		rv := resolve("defaults."+string(f),
			boolMap(SourceOverride, in.Overrides.Features, f),
			boolMap(SourceFlag, in.Flags.Features, f),
			configLayer,
			str(SourceDefault, "false"),
		)
		values = append(values, rv)
		opts = opts.With(f, rv.Value == "true")
	}

	template := resolve("defaults.template",
		str(SourceFlag, in.Flags.Template),
		str(SourceConfig, cfg.Defaults.Template),
		str(SourceDefault, features.DefaultTemplate),
	)
	if err := ValidateTemplateName(template.Value); err != nil {
		return ResolvedOptions{}, err
	}
	values = append(values, template)
	opts.Template = template.Value

	sort.Slice(values, func(i, j int) bool { return values[i].Key < values[j].Key })

	return ResolvedOptions{
		Source: source.Resolve(source.Partial{
			Repository:     repo.Value,
			Branch:         branch.Value,
			LocalCachePath: cachePath,
		}),
		Features: opts,
		GitToken: cfg.Git.Token,
		values:   values,
	}, nil
}

// ResolveTimestamps resolves log timestamps using precedence:
// (1) --timestamps flag, (2) config log.timestamps. Nil means default.
func ResolveTimestamps(flag *bool, cfg *Config) *bool {
	if flag != nil {
		return flag
	}
	if cfg != nil {
		return cfg.Log.Timestamps
	}
	return nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}

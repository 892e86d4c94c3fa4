// Package features holds the caller's resolved feature options and decides
// which template folders are installed for them.
package features

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/boilrkit/cli/internal/errors"
)

// Flag is an optional feature key. The set of flags is closed.
type Flag string

const (
	FlagRouter   Flag = "router"
	FlagFirebase Flag = "firebase"
	FlagAI       Flag = "ai"
	FlagPWA      Flag = "pwa"
	FlagPayment  Flag = "payment"
)

// DefaultTemplate is the entry-view base name used when none is selected.
const DefaultTemplate = "App"

// AllFlags returns every optional feature flag in a stable order.
func AllFlags() []Flag {
	return []Flag{FlagRouter, FlagFirebase, FlagAI, FlagPWA, FlagPayment}
}

// ParseFlag converts a name into a Flag.
func ParseFlag(name string) (Flag, error) {
	f := Flag(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllFlags() {
		if f == known {
			return f, nil
		}
	}
	return "", oerrors.Wrap(oerrors.ErrValidation,
		fmt.Sprintf("unknown feature %q (valid: %s)", name, strings.Join(FlagNames(), ", ")))
}

// FlagNames returns the names of all flags.
func FlagNames() []string {
	flags := AllFlags()
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	return names
}

// OptionSet is the resolved feature selection for one run. The zero value
// has every feature disabled and the default template.
type OptionSet struct {
	Router   bool
	Firebase bool
	AI       bool
	PWA      bool
	Payment  bool

	// Template is the entry-view base name; empty means DefaultTemplate.
	Template string
}

// Enabled reports whether f is enabled. Unknown flags are disabled.
func (o OptionSet) Enabled(f Flag) bool {
	switch f {
	case FlagRouter:
		return o.Router
	case FlagFirebase:
		return o.Firebase
	case FlagAI:
		return o.AI
	case FlagPWA:
		return o.PWA
	case FlagPayment:
		return o.Payment
	default:
		return false
	}
}

// With returns a copy of o with f set to enabled.
func (o OptionSet) With(f Flag, enabled bool) OptionSet {
	switch f {
	case FlagRouter:
		o.Router = enabled
	case FlagFirebase:
		o.Firebase = enabled
	case FlagAI:
		o.AI = enabled
	case FlagPWA:
		o.PWA = enabled
	case FlagPayment:
		o.Payment = enabled
	}
	return o
}

// TemplateName returns the entry-view base name.
func (o OptionSet) TemplateName() string {
	if o.Template == "" {
		return DefaultTemplate
	}
	return o.Template
}

// EnabledFlags returns the enabled flags, sorted by name.
func (o OptionSet) EnabledFlags() []Flag {
	var out []Flag
	for _, f := range AllFlags() {
		if o.Enabled(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String returns a compact description for log output.
func (o OptionSet) String() string {
	enabled := o.EnabledFlags()
	names := make([]string, len(enabled))
	for i, f := range enabled {
		names[i] = string(f)
	}
	if len(names) == 0 {
		names = []string{"none"}
	}
	return fmt.Sprintf("template=%s features=%s", o.TemplateName(), strings.Join(names, ","))
}

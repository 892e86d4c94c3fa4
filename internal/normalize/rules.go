// Package normalize renames extensionless template files to the source
// extension their content suggests.
package normalize

import "strings"

// Source extensions.
const (
	ExtComponent = ".tsx"
	ExtModule    = ".ts"
	ExtScript    = ".js"
)

// Rule maps file content to an extension.
type Rule struct {
	Name  string
	Match func(content string) bool
	Ext   string
}

// Rules is an ordered rule table. The first matching rule wins.
type Rules struct {
	Rules    []Rule
	Fallback string
}

// Classify returns the extension for content and the name of the rule that
// chose it.
func (r Rules) Classify(content string) (ext, rule string) {
	for _, rule := range r.Rules {
		if rule.Match(content) {
			return rule.Ext, rule.Name
		}
	}
	return r.Fallback, "fallback"
}

// DefaultRules classifies UI components, then plain modules, and falls back
// to a plain script.
func DefaultRules() Rules {
	return Rules{
		Rules: []Rule{
			{Name: "component", Match: containsAny("import React", "export default"), Ext: ExtComponent},
			{Name: "module", Match: containsAny("import ", "export "), Ext: ExtModule},
		},
		Fallback: ExtScript,
	}
}

func containsAny(markers ...string) func(string) bool {
	return func(content string) bool {
		for _, m := range markers {
			if strings.Contains(content, m) {
				return true
			}
		}
		return false
	}
}

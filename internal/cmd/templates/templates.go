// Package templates provides CLI command implementations for the templates
// command group.
package templates

import (
	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/cmdtypes"
)

// NewTemplatesCmd creates the templates command group.
func NewTemplatesCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the template repository",
		Long: `Inspect the template repository used by create.

Templates are cloned into a local cache and updated in place on later runs.
When the repository cannot be reached, ./templates and then
~/.boilrkit/templates are used as local fallbacks.`,
	}

	c.AddCommand(NewTemplatesFetchCmd(cfg))
	c.AddCommand(NewTemplatesListCmd(cfg))

	return c
}

package templates

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/acquire"
	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/cmdutil"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/materialize"
	"github.com/boilrkit/cli/internal/output"
)

// NewTemplatesListCmd creates the templates list command.
func NewTemplatesListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sf cmdutil.SourceFlags
		ff cmdutil.FeatureFlags
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List template folders for the selected features",
		Long: `List the top-level folders of the template root and whether create
would copy them with the given feature flags: core folders are always
copied, optional folders only when their feature is enabled.`,
		Example: `  # Show what create -r -f would install
  boilrkit templates list -r -f`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runList(c, cfg, &sf, &ff)
		},
	}

	sf.AddTo(c)
	ff.AddTo(c)

	return c
}

func runList(c *cobra.Command, cfg *cmdtypes.GlobalConfig, sf *cmdutil.SourceFlags, ff *cmdutil.FeatureFlags) error {
	if cfg.LoadErr != nil {
		return cmdutil.Fail("loading config", cfg.LoadErr)
	}

	resolved, err := cmdutil.ResolveOptions(c, cfg, sf, ff)
	if err != nil {
		return cmdutil.Fail("resolving options", err)
	}

	engine, err := cmdutil.NewEngine(cfg, resolved)
	if err != nil {
		return cmdutil.Fail("initializing template engine", err)
	}

	var (
		acquired *acquire.Result
		sel      features.Selection
	)
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var selErr error
		acquired, sel, selErr = engine.Select(ctx, resolved.Source, resolved.Features)
		return selErr
	}, output.WithTitle("Fetching templates..."))
	if err != nil {
		return cmdutil.Fail("list failed", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "Template root: %s\n\n", output.StyleNoun.Render(acquired.Root))
	if sel.Empty() {
		output.Warn("template root has no folders", "path", acquired.Root)
		return nil
	}

	cmdutil.PrintSelection(w, sel)
	fmt.Fprintf(w, "\nEntry view: %s -> %s\n",
		materialize.EntryViewVariant(resolved.Features), materialize.EntryViewPath)

	return nil
}

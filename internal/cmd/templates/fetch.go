package templates

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/acquire"
	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/cmdutil"
	"github.com/boilrkit/cli/internal/output"
)

// NewTemplatesFetchCmd creates the templates fetch command.
func NewTemplatesFetchCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var sf cmdutil.SourceFlags

	c := &cobra.Command{
		Use:   "fetch",
		Short: "Clone or update the template cache",
		Long: `Clone the template repository into the local cache, or update the
cached checkout when one exists, and print the effective template root.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runFetch(c, cfg, &sf)
		},
	}

	sf.AddTo(c)

	return c
}

func runFetch(c *cobra.Command, cfg *cmdtypes.GlobalConfig, sf *cmdutil.SourceFlags) error {
	if cfg.LoadErr != nil {
		return cmdutil.Fail("loading config", cfg.LoadErr)
	}

	resolved, err := cmdutil.ResolveOptions(c, cfg, sf, nil)
	if err != nil {
		return cmdutil.Fail("resolving options", err)
	}

	engine, err := cmdutil.NewEngine(cfg, resolved)
	if err != nil {
		return cmdutil.Fail("initializing template engine", err)
	}

	var acquired *acquire.Result
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var acqErr error
		acquired, acqErr = engine.Acquire(ctx, resolved.Source)
		return acqErr
	}, output.WithTitle("Fetching templates..."))
	if err != nil {
		return cmdutil.Fail("fetch failed", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "Template root: %s\n", output.StyleNoun.Render(acquired.Root))
	fmt.Fprintf(w, "Origin:        %s\n", acquired.Origin)
	if acquired.Origin == acquire.OriginRemote {
		fmt.Fprintf(w, "Repository:    %s (%s)\n", resolved.Source.Repository, resolved.Source.Branch)
	}

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/cmdutil"
	"github.com/boilrkit/cli/internal/config"
	"github.com/boilrkit/cli/internal/output"
	"github.com/boilrkit/cli/internal/scaffold"
)

// NewCreateCmd creates the create command.
func NewCreateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		sf      cmdutil.SourceFlags
		ff      cmdutil.FeatureFlags
		dirFlag string
	)

	c := &cobra.Command{
		Use:   "create <project-name>",
		Short: "Create a new project from the template repository",
		Long: `Create a new project from the template repository.

Folders named in the feature table are copied only when their feature is
enabled. Every other top-level folder is core and always copied. The entry
view src/App.tsx is chosen by routing mode; an existing one is kept as
src/App.tsx.bak. An existing project directory is merged into, not wiped.

Feature defaults come from the config file unless --minimal is given.`,
		Example: `  # Create a project with routing and Firebase
  boilrkit create shop -r -f

  # Use a fork of the template repository
  boilrkit create shop --repo acme/react-templates --branch next

  # Ignore feature defaults from the config file
  boilrkit create shop --minimal -r`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(c, args[0], dirFlag, cfg, &sf, &ff)
		},
	}

	c.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Directory to create the project in")
	sf.AddTo(c)
	ff.AddTo(c)

	return c
}

func runCreate(c *cobra.Command, name, dir string, cfg *cmdtypes.GlobalConfig, sf *cmdutil.SourceFlags, ff *cmdutil.FeatureFlags) error {
	if err := config.ValidateProjectName(name); err != nil {
		return cmdutil.Fail("invalid project name", err)
	}
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

	dest := filepath.Join(dir, name)
	output.Debug("creating project", "name", name, "path", dest, "options", resolved.Features.String())

	var result *scaffold.Result
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var runErr error
		result, runErr = engine.Run(ctx, scaffold.Request{
			Source:      resolved.Source,
			Options:     resolved.Features,
			Destination: dest,
		})
		return runErr
	}, output.WithTitle(fmt.Sprintf("Creating %s...", name)))
	if err != nil {
		return cmdutil.Fail("create failed", err)
	}

	cmdutil.PrintWarnings(result)

	w := c.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", output.StyleAction.Render("Created"), output.StyleNoun.Render(dest))
	if tree := output.RenderFileTree(name, cmdutil.FileDescriptions(result)); tree != "" {
		fmt.Fprintln(w, tree)
	}
	fmt.Fprintln(w, output.FormatCheckmark(output.StyleSummary.Render("Project ready")))

	return nil
}

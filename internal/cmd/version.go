package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boilrkit/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the boilrkit version, build metadata, the go-git library version and the git binary found on PATH.`,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			fmt.Fprintln(c.OutOrStdout(), version.DetectGitBinary().String())
			return nil
		},
	}
}

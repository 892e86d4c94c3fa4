package cmdutil

import (
	"github.com/boilrkit/cli/internal/acquire"
	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/config"
	"github.com/boilrkit/cli/internal/scaffold"
)

// NewEngine builds the template engine for resolved options. It uses
// cfg.Git when set and go-git otherwise.
func NewEngine(cfg *cmdtypes.GlobalConfig, resolved config.ResolvedOptions) (*scaffold.Engine, error) {
	git := cfg.Git
	if git == nil {
		git = acquire.NewGoGit(resolved.GitToken, nil)
	}
	return NewEngineWithGit(cfg, git)
}

// NewEngineWithGit builds the template engine with a custom Git
// implementation.
func NewEngineWithGit(cfg *cmdtypes.GlobalConfig, git acquire.Git) (*scaffold.Engine, error) {
	acq, err := acquire.New(acquire.Options{
		Git:       git,
		Fallbacks: cfg.Fallbacks,
	})
	if err != nil {
		return nil, err
	}

	return scaffold.New(acq, nil), nil
}

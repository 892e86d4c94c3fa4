// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/templates, internal/cmd/config).
package cmdtypes

import (
	"github.com/boilrkit/cli/internal/acquire"
	"github.com/boilrkit/cli/internal/config"
	oerrors "github.com/boilrkit/cli/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded config file, or built-in empty values when no
	// file exists.
	Config *config.Config

	// LoadErr is the error from loading the config file, if any. Commands
	// that depend on the config fail with it; config init ignores it.
	LoadErr error

	// ConfigPath is the resolved --config path. Empty means the default
	// location lookup was used.
	ConfigPath string

	// Fallbacks overrides the local template fallback directories. Nil
	// means the acquisition defaults.
	Fallbacks []string

	// Git overrides the version-control client. Nil means go-git.
	Git acquire.Git

	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess             = oerrors.ExitSuccess
	ExitGeneralError        = oerrors.ExitGeneralError
	ExitValidationError     = oerrors.ExitValidationError
	ExitTemplateUnavailable = oerrors.ExitTemplateUnavailable
	ExitNotFound            = oerrors.ExitNotFound
	ExitRootViewMissing     = oerrors.ExitRootViewMissing
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

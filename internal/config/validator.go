package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/source"
)

var (
	// templateNameRegex limits entry-view base names to plain file stems.
	templateNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

	// projectNameRegex accepts a single directory name.
	projectNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap marks the error as a validation failure.
func (e *ValidationError) Unwrap() error {
	return oerrors.ErrValidation
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap marks the collection as a validation failure.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validate validates the given configuration. Unset fields are valid.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Templates.Repo != "" {
		if err := source.Resolve(source.Partial{Repository: cfg.Templates.Repo}).Validate(); err != nil {
			errs = append(errs, ValidationError{
				Field:   "templates.repo",
				Message: detailMessage(err),
			})
		}
	}

	if cfg.Templates.Branch != "" {
		if err := source.Resolve(source.Partial{Branch: cfg.Templates.Branch}).Validate(); err != nil {
			errs = append(errs, ValidationError{
				Field:   "templates.branch",
				Message: detailMessage(err),
			})
		}
	}

	if cfg.Templates.Path != "" && strings.TrimSpace(cfg.Templates.Path) == "" {
		errs = append(errs, ValidationError{
			Field:   "templates.path",
			Message: "must not be empty or whitespace only",
		})
	}

	if err := ValidateTemplateName(cfg.Defaults.Template); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Field = "defaults.template"
			errs = append(errs, *verr)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func ValidateFile(path string) (*Config, error) {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	return cfg, Validate(cfg)
}

// ValidateTemplateName checks an entry-view base name. Empty is valid and
// means the default.
func ValidateTemplateName(name string) error {
	if name == "" {
		return nil
	}

	if !templateNameRegex.MatchString(name) {
		return &ValidationError{
			Field:   "template",
			Message: "must start with a letter and contain only letters, digits, '-' or '_'",
		}
	}

	return nil
}

// ValidateProjectName checks the name given to create. It becomes a single
// directory under the target directory.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project-name", Message: "must not be empty"}
	}
	if !projectNameRegex.MatchString(name) {
		return &ValidationError{
			Field:   "project-name",
			Message: fmt.Sprintf("%q must start with a letter or digit and contain only letters, digits, '.', '-' or '_'", name),
		}
	}
	return nil
}

func detailMessage(err error) string {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return detail.Message
	}
	return err.Error()
}

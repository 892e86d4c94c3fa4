package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrSourceConfig indicates a malformed or missing template source configuration.
	ErrSourceConfig = errors.New("source configuration error")

	// ErrAcquisition indicates a single clone/fetch/update attempt failed.
	ErrAcquisition = errors.New("acquisition failed")

	// ErrTemplateUnavailable indicates the remote source and every fallback failed.
	ErrTemplateUnavailable = errors.New("template unavailable")

	// ErrRootViewMissing indicates the selected entry-view variant is absent
	// from the template root, or could not be installed.
	ErrRootViewMissing = errors.New("root view missing")

	// ErrValidation indicates invalid user input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input or template source configuration.
	ExitValidationError = 2

	// ExitTemplateUnavailable indicates templates could not be obtained from any source.
	ExitTemplateUnavailable = 3

	// ExitNotFound indicates a file or directory was not found.
	ExitNotFound = 5

	// ExitRootViewMissing indicates the entry view could not be installed.
	ExitRootViewMissing = 6
)

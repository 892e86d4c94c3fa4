// Package source resolves the concrete template source location (repository,
// branch, local cache path) from partially specified configuration.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	oerrors "github.com/boilrkit/cli/internal/errors"
)

const (
	// DefaultRepository is the template repository slug used when none is configured.
	DefaultRepository = "jjwprotozoa/boilrkit-templates"

	// DefaultBranch is the branch checked out when none is configured.
	DefaultBranch = "main"

	// cacheDirName is the cache directory name under the process temp dir.
	cacheDirName = "boilrkit-templates"
)

// slugPattern matches GitHub-style owner/name repository slugs.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Partial holds explicitly configured template source values.
// Empty fields are filled with defaults by Resolve.
type Partial struct {
	Repository     string
	Branch         string
	LocalCachePath string
}

// TemplateSource is a fully resolved template source. It is constructed once
// per run and not modified afterwards.
type TemplateSource struct {
	// Repository is an owner/name slug or a full clone URL.
	Repository string

	// Branch is the branch to check out.
	Branch string

	// LocalCachePath is the directory holding the local checkout.
	LocalCachePath string
}

// DefaultCachePath returns the cache path used when none is configured.
func DefaultCachePath() string {
	return filepath.Join(os.TempDir(), cacheDirName)
}

// Resolve fills unset fields of p with defaults. It never fails.
func Resolve(p Partial) TemplateSource {
	src := TemplateSource{
		Repository:     strings.TrimSpace(p.Repository),
		Branch:         strings.TrimSpace(p.Branch),
		LocalCachePath: strings.TrimSpace(p.LocalCachePath),
	}

	if src.Repository == "" {
		src.Repository = DefaultRepository
	}
	if src.Branch == "" {
		src.Branch = DefaultBranch
	}
	if src.LocalCachePath == "" {
		src.LocalCachePath = DefaultCachePath()
	}

	return src
}

// IsURL reports whether the repository is a clone URL or local path rather
// than an owner/name slug.
func (s TemplateSource) IsURL() bool {
	r := s.Repository
	return strings.Contains(r, "://") ||
		strings.HasPrefix(r, "git@") ||
		filepath.IsAbs(r)
}

// RepoURL returns the clone URL. Slugs expand to GitHub HTTPS URLs; URLs and
// absolute paths are returned unchanged.
func (s TemplateSource) RepoURL() string {
	if s.IsURL() {
		return s.Repository
	}
	return fmt.Sprintf("https://github.com/%s.git", s.Repository)
}

// BrowseURL returns a location a user can visit or clone manually.
func (s TemplateSource) BrowseURL() string {
	if s.IsURL() {
		return s.Repository
	}
	return fmt.Sprintf("https://github.com/%s", s.Repository)
}

// Validate checks that the source is usable. Failures are source
// configuration errors and are never retried.
func (s TemplateSource) Validate() error {
	if !s.IsURL() && !slugPattern.MatchString(s.Repository) {
		return oerrors.NewSourceConfigError(
			fmt.Sprintf("repository %q is neither an owner/name slug nor a URL", s.Repository),
			s.Repository,
			"Set templates.repo to a value like "+DefaultRepository+" or a full clone URL.",
		)
	}

	if strings.ContainsAny(s.Branch, " \t\n") || strings.HasPrefix(s.Branch, "-") {
		return oerrors.NewSourceConfigError(
			fmt.Sprintf("branch %q is not a valid branch name", s.Branch),
			s.Repository,
			"Set templates.branch to an existing branch such as "+DefaultBranch+".",
		)
	}

	if !filepath.IsAbs(s.LocalCachePath) {
		return oerrors.NewSourceConfigError(
			fmt.Sprintf("cache path %q must be absolute", s.LocalCachePath),
			s.LocalCachePath,
			"Set templates.path to an absolute, writable directory.",
		)
	}

	return nil
}

// String returns a compact description for log output.
func (s TemplateSource) String() string {
	return fmt.Sprintf("%s@%s", s.Repository, s.Branch)
}

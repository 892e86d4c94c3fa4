// Package acquire obtains a template tree on local disk. It reuses a valid
// cached checkout (updating it in place) or clones afresh, and falls back
// through an ordered list of local directories when the remote is unusable.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/output"
	"github.com/boilrkit/cli/internal/source"
)

const (
	// vcsMarker marks a directory as a valid checkout.
	vcsMarker = ".git"

	// nestedRootName is the subfolder used as template root when present.
	nestedRootName = "templates"
)

// Git performs the version-control operations used by acquisition.
type Git interface {
	// Clone clones branch of url into dir. dir does not exist beforehand.
	Clone(ctx context.Context, url, branch, dir string) error

	// Update fetches from the remote, switches dir to branch and
	// fast-forwards it to the remote tip.
	Update(ctx context.Context, dir, branch string) error

	// RemoteURL returns the origin URL of the checkout in dir.
	RemoteURL(dir string) (string, error)
}

// Origin describes where an acquired tree came from.
type Origin string

const (
	// OriginRemote means the tree was cloned or updated from the repository.
	OriginRemote Origin = "remote"

	// OriginFallback means a local fallback directory was used as is.
	OriginFallback Origin = "fallback"
)

// Attempt is one way of obtaining a template tree. Attempts are tried in
// order until one succeeds.
type Attempt struct {
	Name   string
	Origin Origin
	Run    func(ctx context.Context, src source.TemplateSource) (string, error)
}

// Result is a successfully acquired template tree.
type Result struct {
	// Root is the effective template root.
	Root string

	// Dir is the acquired directory; Root may be its templates subfolder.
	Dir string

	// Origin tells whether the remote or a fallback was used.
	Origin Origin

	// Attempt names the attempt that succeeded.
	Attempt string

	// Failures holds the errors of attempts tried before the successful one.
	Failures []error
}

// Failure is a single failed acquisition attempt.
type Failure struct {
	Attempt  string
	Location string
	Err      error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Attempt, f.Location, f.Err)
}

// Unwrap exposes both the acquisition sentinel and the underlying cause.
func (f *Failure) Unwrap() []error {
	return []error{oerrors.ErrAcquisition, f.Err}
}

// Options configures an Acquirer.
type Options struct {
	// Git performs clone and update. Required.
	Git Git

	// Fallbacks are local directories tried in order when the remote fails.
	// Nil means DefaultFallbacks.
	Fallbacks []string
}

// Acquirer runs the acquisition fallback chain.
type Acquirer struct {
	git       Git
	fallbacks []string
}

// New creates an Acquirer.
func New(opts Options) (*Acquirer, error) {
	if opts.Git == nil {
		return nil, errors.New("acquire: git implementation is required")
	}

	fallbacks := opts.Fallbacks
	if fallbacks == nil {
		var err error
		fallbacks, err = DefaultFallbacks()
		if err != nil {
			return nil, err
		}
	}

	return &Acquirer{git: opts.Git, fallbacks: fallbacks}, nil
}

// DefaultFallbacks returns ./templates (relative to the working directory)
// followed by ~/.boilrkit/templates.
func DefaultFallbacks() ([]string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	return []string{
		filepath.Join(wd, "templates"),
		filepath.Join(home, ".boilrkit", "templates"),
	}, nil
}

// Attempts returns the ordered acquisition attempts: the remote first,
// then each fallback directory.
func (a *Acquirer) Attempts() []Attempt {
	attempts := make([]Attempt, 0, len(a.fallbacks)+1)
	attempts = append(attempts, Attempt{
		Name:   "remote",
		Origin: OriginRemote,
		Run:    a.fetchRemote,
	})

	for _, dir := range a.fallbacks {
		attempts = append(attempts, Attempt{
			Name:   "fallback " + dir,
			Origin: OriginFallback,
			Run:    localDir(dir),
		})
	}

	return attempts
}

// Acquire obtains the template tree for src. It returns a source
// configuration error immediately when src is invalid, and a template
// unavailable error once every attempt has failed.
func (a *Acquirer) Acquire(ctx context.Context, src source.TemplateSource) (*Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	log := output.StageLogger("acquire")
	log.Info("fetching templates", "repo", src.Repository, "branch", src.Branch)
	log.Debug("clone target", "path", src.LocalCachePath)

	var failures []error
	for _, attempt := range a.Attempts() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir, err := attempt.Run(ctx, src)
		if err != nil {
			failures = append(failures, err)
			if attempt.Origin == OriginRemote {
				log.Warn("could not fetch templates", "repo", src.Repository, "error", err)
			} else {
				log.Debug("fallback unavailable", "error", err)
			}
			continue
		}

		if attempt.Origin == OriginFallback {
			log.Warn("using local fallback", "path", dir)
		}

		root := EffectiveRoot(dir)
		log.Debug("using template root", "path", root)

		return &Result{
			Root:     root,
			Dir:      dir,
			Origin:   attempt.Origin,
			Attempt:  attempt.Name,
			Failures: failures,
		}, nil
	}

	return nil, a.unavailable(src, failures)
}

// fetchRemote updates a valid cached checkout or clones afresh.
func (a *Acquirer) fetchRemote(ctx context.Context, src source.TemplateSource) (string, error) {
	dir := src.LocalCachePath
	log := output.StageLogger("acquire")

	if IsCheckout(dir) && a.cachedFrom(dir, src.RepoURL()) {
		log.Debug("updating cached checkout", "path", dir, "branch", src.Branch)
		if err := a.git.Update(ctx, dir, src.Branch); err != nil {
			return "", &Failure{Attempt: "update", Location: dir, Err: err}
		}
		return dir, nil
	}

	if _, err := os.Stat(dir); err == nil {
		log.Warn("removing stale folder", "path", dir)
		if err := os.RemoveAll(dir); err != nil {
			return "", &Failure{Attempt: "remove stale folder", Location: dir, Err: err}
		}
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", &Failure{Attempt: "clone", Location: dir, Err: err}
	}

	log.Debug("cloning template repo", "url", src.RepoURL(), "branch", src.Branch)
	if err := a.git.Clone(ctx, src.RepoURL(), src.Branch, dir); err != nil {
		// A partial clone would otherwise look like a valid checkout next run.
		_ = os.RemoveAll(dir)
		return "", &Failure{Attempt: "clone", Location: src.RepoURL(), Err: err}
	}

	return dir, nil
}

// cachedFrom reports whether the checkout in dir was cloned from url. A
// checkout of another repository, or one whose origin cannot be read, is
// replaced by a fresh clone.
func (a *Acquirer) cachedFrom(dir, url string) bool {
	origin, err := a.git.RemoteURL(dir)
	if err != nil {
		output.StageLogger("acquire").Warn("cannot read origin of cached checkout", "path", dir, "err", err)
		return false
	}
	if !sameRemote(origin, url) {
		output.StageLogger("acquire").Warn("cached checkout is from another repository",
			"path", dir, "cached", origin, "requested", url)
		return false
	}
	return true
}

// sameRemote compares clone URLs ignoring a trailing slash and ".git" suffix.
func sameRemote(a, b string) bool {
	norm := func(u string) string {
		return strings.TrimSuffix(strings.TrimSuffix(u, "/"), ".git")
	}
	return norm(a) == norm(b)
}

// localDir returns an attempt body that accepts dir when it is an existing
// directory. Fallbacks are used as is, never updated.
func localDir(dir string) func(context.Context, source.TemplateSource) (string, error) {
	return func(context.Context, source.TemplateSource) (string, error) {
		info, err := os.Stat(dir)
		if err != nil {
			return "", &Failure{Attempt: "fallback", Location: dir, Err: err}
		}
		if !info.IsDir() {
			return "", &Failure{Attempt: "fallback", Location: dir, Err: errors.New("not a directory")}
		}
		return dir, nil
	}
}

func (a *Acquirer) unavailable(src source.TemplateSource, failures []error) error {
	ctx := map[string]string{
		"Branch": src.Branch,
	}
	for i, f := range failures {
		ctx[fmt.Sprintf("Attempt %d", i+1)] = f.Error()
	}

	return &oerrors.DetailError{
		Type:     "template unavailable",
		Message:  fmt.Sprintf("could not fetch templates from %s and no fallback found", src.Repository),
		Location: src.Repository,
		Context:  ctx,
		Hint: fmt.Sprintf("Check templates.repo in your config, or clone %s manually into one of: %s",
			src.BrowseURL(), strings.Join(a.fallbacks, ", ")),
		Cause: errors.Join(append([]error{oerrors.ErrTemplateUnavailable}, failures...)...),
	}
}

// IsCheckout reports whether dir contains version-control metadata.
func IsCheckout(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, vcsMarker))
	return err == nil
}

// EffectiveRoot returns dir/templates when that folder exists, else dir.
func EffectiveRoot(dir string) string {
	nested := filepath.Join(dir, nestedRootName)
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested
	}
	return dir
}

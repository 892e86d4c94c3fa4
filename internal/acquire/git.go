package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GoGit implements Git with go-git, without requiring a git executable for
// remote repositories.
type GoGit struct {
	// Auth is used for clone and fetch. Nil means anonymous.
	Auth transport.AuthMethod

	// Progress receives remote progress messages. Nil discards them.
	Progress io.Writer
}

// NewGoGit creates a GoGit. A non-empty token enables HTTP basic auth for
// private template repositories.
func NewGoGit(token string, progress io.Writer) *GoGit {
	g := &GoGit{Progress: progress}
	if token != "" {
		g.Auth = &http.BasicAuth{Username: "boilrkit", Password: token}
	}
	return g
}

// Clone clones branch of url into dir.
func (g *GoGit) Clone(ctx context.Context, url, branch, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Auth:          g.Auth,
		Progress:      g.Progress,
	})
	if err != nil {
		return fmt.Errorf("cloning %s (branch %s): %w", url, branch, err)
	}
	return nil
}

// Update fetches branch from origin, fast-forwards the local branch to the
// remote tip and checks it out.
func (g *GoGit) Update(ctx context.Context, dir, branch string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("opening checkout %s: %w", dir, err)
	}

	branchRef := plumbing.NewBranchReferenceName(branch)
	remoteRef := plumbing.NewRemoteReferenceName(git.DefaultRemoteName, branch)

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("+%s:%s", branchRef, remoteRef))},
		Auth:       g.Auth,
		Progress:   g.Progress,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetching %s: %w", branch, err)
	}

	remote, err := repo.Reference(remoteRef, true)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", remoteRef, err)
	}

	if err := fastForward(repo, branchRef, remote.Hash()); err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: branchRef}); err != nil {
		return fmt.Errorf("checking out %s: %w", branch, err)
	}

	return nil
}

// RemoteURL returns the first URL of the origin remote of the checkout in dir.
func (g *GoGit) RemoteURL(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("opening checkout %s: %w", dir, err)
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("reading remote %s: %w", git.DefaultRemoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", git.DefaultRemoteName)
	}
	return urls[0], nil
}

// fastForward moves branchRef to target. It refuses when the local branch
// has commits the target does not contain.
func fastForward(repo *git.Repository, branchRef plumbing.ReferenceName, target plumbing.Hash) error {
	local, err := repo.Reference(branchRef, true)
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// First time this branch is used in the cache.
	case err != nil:
		return fmt.Errorf("resolving %s: %w", branchRef, err)
	case local.Hash() == target:
		return nil
	default:
		localCommit, err := repo.CommitObject(local.Hash())
		if err != nil {
			return fmt.Errorf("reading %s: %w", branchRef, err)
		}
		targetCommit, err := repo.CommitObject(target)
		if err != nil {
			return fmt.Errorf("reading remote tip %s: %w", target, err)
		}
		ok, err := localCommit.IsAncestor(targetCommit)
		if err != nil {
			return fmt.Errorf("comparing %s with remote tip: %w", branchRef, err)
		}
		if !ok {
			return fmt.Errorf("%s has diverged from the remote: %w", branchRef.Short(), git.ErrNonFastForwardUpdate)
		}
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(branchRef, target)); err != nil {
		return fmt.Errorf("updating %s: %w", branchRef, err)
	}
	return nil
}

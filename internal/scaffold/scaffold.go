// Package scaffold runs the template engine: it acquires the template tree,
// selects folders for the requested features, materializes them into the
// destination project and normalizes file extensions under src/.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/boilrkit/cli/internal/acquire"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/materialize"
	"github.com/boilrkit/cli/internal/normalize"
	"github.com/boilrkit/cli/internal/output"
	"github.com/boilrkit/cli/internal/source"
)

// SourceDir is the destination subdirectory whose files are normalized.
const SourceDir = "src"

// Acquirer obtains a template tree for a source.
type Acquirer interface {
	Acquire(ctx context.Context, src source.TemplateSource) (*acquire.Result, error)
}

// Request is a single engine run.
type Request struct {
	Source      source.TemplateSource
	Options     features.OptionSet
	Destination string
}

// Result collects the per-stage outcomes of a run.
type Result struct {
	Acquired     *acquire.Result
	Selection    features.Selection
	Materialized *materialize.Report
	Normalized   *normalize.Report

	// EmptyTemplate is set when the template root had no folders. The
	// destination then exists but nothing was installed.
	EmptyTemplate bool
}

// Warnings returns a one-line description of each non-fatal condition.
func (r *Result) Warnings() []string {
	var out []string
	if r.EmptyTemplate {
		out = append(out, fmt.Sprintf("template root %s has no folders", r.Acquired.Root))
	}
	if r.Materialized != nil {
		for _, folder := range r.Materialized.Missing {
			out = append(out, fmt.Sprintf("folder %s missing from template root", folder))
		}
		for _, f := range r.Materialized.Failures {
			out = append(out, f.Error())
		}
		for _, link := range r.Materialized.Links {
			out = append(out, fmt.Sprintf("symlink %s in template root not copied", link))
		}
	}
	if r.Normalized != nil {
		for _, s := range r.Normalized.Skipped {
			out = append(out, "normalize skipped "+s.Error())
		}
	}
	return out
}

// Engine runs the template pipeline.
type Engine struct {
	acquirer Acquirer
	selector *features.Selector
}

// New creates an Engine. A nil selector uses the default folder table.
func New(acquirer Acquirer, selector *features.Selector) *Engine {
	if selector == nil {
		selector = features.NewSelector(nil)
	}
	return &Engine{acquirer: acquirer, selector: selector}
}

// Acquire runs the acquisition stage only.
func (e *Engine) Acquire(ctx context.Context, src source.TemplateSource) (*acquire.Result, error) {
	return e.acquirer.Acquire(ctx, src)
}

// Select acquires the template tree and classifies its folders.
func (e *Engine) Select(ctx context.Context, src source.TemplateSource, opts features.OptionSet) (*acquire.Result, features.Selection, error) {
	acquired, err := e.acquirer.Acquire(ctx, src)
	if err != nil {
		return nil, features.Selection{}, err
	}

	sel, err := e.selector.Select(osfs.New(acquired.Root), opts)
	if err != nil {
		return acquired, features.Selection{}, err
	}
	return acquired, sel, nil
}

// Run executes every stage in order. Source configuration errors, an
// unavailable template and a missing entry view abort the run; everything
// else is logged and reported in the result.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	dest, err := filepath.Abs(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolving destination %s: %w", req.Destination, err)
	}

	acquired, sel, err := e.Select(ctx, req.Source, req.Options)
	if err != nil {
		return nil, err
	}
	result := &Result{Acquired: acquired, Selection: sel}

	log := output.StageLogger("select")
	log.Debug("selected folders", "core", sel.Core, "optional", sel.Optional, "skipped", sel.Skipped)

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return result, fmt.Errorf("creating destination %s: %w", dest, err)
	}

	if sel.Empty() {
		log.Warn("template root has no folders, nothing to install", "path", acquired.Root)
		result.EmptyTemplate = true
		return result, nil
	}

	dst := osfs.New(dest)
	result.Materialized, err = materialize.New(osfs.New(acquired.Root), dst).Materialize(ctx, sel.Folders(), req.Options)
	if err != nil {
		return result, err
	}

	result.Normalized, err = normalize.New(dst).Normalize(ctx, SourceDir)
	if err != nil {
		return result, err
	}

	return result, nil
}

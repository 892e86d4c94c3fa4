package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boilrkit/cli/internal/acquire"
	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/source"
	"github.com/boilrkit/cli/internal/testutil"
)

type stubAcquirer struct {
	root  string
	err   error
	calls int
}

func (s *stubAcquirer) Acquire(_ context.Context, src source.TemplateSource) (*acquire.Result, error) {
	s.calls++
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return &acquire.Result{Root: s.root, Dir: s.root, Origin: acquire.OriginRemote, Attempt: "remote"}, nil
}

func testSource(t *testing.T) source.TemplateSource {
	t.Helper()
	return source.Resolve(source.Partial{LocalCachePath: filepath.Join(t.TempDir(), "cache")})
}

func writeTemplates(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"core/package.json":        `{"name":"app"}`,
		"core/src/main":            "import React from 'react'",
		"core/src/setup":           `console.log("hi")`,
		"router/src/routes":        "export const routes = []",
		"firebase/src/firebase.ts": "export const app = {}",
		"payment/src/checkout.tsx": "export default function Checkout() {}",
		"App.tsx":                  "router view",
		"AppNoRouter.tsx":          "plain view",
	})
	return root
}

func TestEngine_Run(t *testing.T) {
	root := writeTemplates(t)
	dest := filepath.Join(t.TempDir(), "my-app")
	testutil.WriteFile(t, dest, "src/App.tsx", "user view")

	engine := New(&stubAcquirer{root: root}, nil)
	result, err := engine.Run(context.Background(), Request{
		Source:      testSource(t),
		Options:     features.OptionSet{Router: true},
		Destination: dest,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"core"}, result.Selection.Core)
	assert.Equal(t, []string{"router"}, result.Selection.Optional)
	assert.Equal(t, []string{"firebase", "payment"}, result.Selection.Skipped)
	assert.Equal(t, []string{"core", "router"}, result.Materialized.Installed)
	assert.Empty(t, result.Warnings())

	for _, want := range []string{
		"package.json",
		"src/main.tsx",
		"src/setup.js",
		"src/routes.ts",
		"src/App.tsx",
		"src/App.tsx.bak",
	} {
		assert.FileExists(t, filepath.Join(dest, want))
	}
	assert.NoFileExists(t, filepath.Join(dest, "src/firebase.ts"))
	assert.NoFileExists(t, filepath.Join(dest, "src/checkout.tsx"))

	view, err := os.ReadFile(filepath.Join(dest, "src/App.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "router view", string(view))

	backup, err := os.ReadFile(filepath.Join(dest, "src/App.tsx.bak"))
	require.NoError(t, err)
	assert.Equal(t, "user view", string(backup))
}

func TestEngine_RunEmptyTemplateRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "README.md", "no folders here")
	dest := filepath.Join(t.TempDir(), "empty-app")

	result, err := New(&stubAcquirer{root: root}, nil).Run(context.Background(), Request{
		Source:      testSource(t),
		Destination: dest,
	})
	require.NoError(t, err)

	assert.True(t, result.EmptyTemplate)
	assert.Nil(t, result.Materialized)
	assert.Len(t, result.Warnings(), 1)
	assert.DirExists(t, dest)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEngine_RunFlatRepositoryRoot(t *testing.T) {
	// Templates kept at the top level of the checkout, next to .git.
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		".git/HEAD":            "ref: refs/heads/main",
		".git/config":          "[core]",
		".git/refs/heads/main": "0000",
		"core/src/main":        "export default function Main() {}",
		"AppNoRouter.tsx":      "plain view",
	})
	dest := filepath.Join(t.TempDir(), "flat-app")

	result, err := New(&stubAcquirer{root: root}, nil).Run(context.Background(), Request{
		Source:      testSource(t),
		Destination: dest,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"core"}, result.Selection.Core)
	assert.Equal(t, []string{"core"}, result.Materialized.Installed)
	for _, name := range []string{"HEAD", "config", "refs", ".git"} {
		assert.NoFileExists(t, filepath.Join(dest, name))
		assert.NoDirExists(t, filepath.Join(dest, name))
	}
	assert.FileExists(t, filepath.Join(dest, "src/main.tsx"))
}

func TestEngine_RunRootViewMissing(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"core/a.txt":      "a",
		"AppNoRouter.tsx": "plain view",
	})

	_, err := New(&stubAcquirer{root: root}, nil).Run(context.Background(), Request{
		Source:      testSource(t),
		Options:     features.OptionSet{Router: true},
		Destination: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrRootViewMissing)
}

func TestEngine_RunAcquireFailure(t *testing.T) {
	acq := &stubAcquirer{err: oerrors.ErrTemplateUnavailable}
	dest := filepath.Join(t.TempDir(), "never")

	_, err := New(acq, nil).Run(context.Background(), Request{Source: testSource(t), Destination: dest})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrTemplateUnavailable)
	assert.NoDirExists(t, dest, "destination is not created when acquisition fails")
}

func TestEngine_RunInvalidSource(t *testing.T) {
	acq := &stubAcquirer{root: t.TempDir()}
	src := source.TemplateSource{Repository: "not a slug", Branch: "main", LocalCachePath: t.TempDir()}

	_, err := New(acq, nil).Run(context.Background(), Request{Source: src, Destination: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrSourceConfig)
	assert.Equal(t, 1, acq.calls)
}

func TestEngine_Select(t *testing.T) {
	root := writeTemplates(t)

	acquired, sel, err := New(&stubAcquirer{root: root}, nil).Select(context.Background(), testSource(t), features.OptionSet{Payment: true})
	require.NoError(t, err)
	assert.Equal(t, root, acquired.Root)
	assert.Equal(t, []string{"core"}, sel.Core)
	assert.Equal(t, []string{"payment"}, sel.Optional)
	assert.Equal(t, []string{"firebase", "router"}, sel.Skipped)
}

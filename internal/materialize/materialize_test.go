package materialize

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/testutil"
)

var errInjected = errors.New("injected copy failure")

// failingFS fails every open below prefix.
type failingFS struct {
	billy.Filesystem
	prefix string
}

func (f *failingFS) Open(name string) (billy.File, error) {
	if strings.HasPrefix(name, f.prefix) {
		return nil, errInjected
	}
	return f.Filesystem.Open(name)
}

func (f *failingFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	if strings.HasPrefix(name, f.prefix) {
		return nil, errInjected
	}
	return f.Filesystem.OpenFile(name, flag, perm)
}

func templateRoot(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	testutil.WriteFS(t, fs, map[string]string{
		"core/package.json":        `{"name":"app"}`,
		"core/src/main.tsx":        "import App from './App'",
		"router/src/routes.tsx":    "export const routes = []",
		"payment/src/checkout.tsx": "export default function Checkout() {}",
		"App.tsx":                  "router view",
		"AppNoRouter.tsx":          "plain view",
	})
	return fs
}

func TestEntryViewVariant(t *testing.T) {
	tests := []struct {
		name string
		opts features.OptionSet
		want string
	}{
		{name: "router", opts: features.OptionSet{Router: true}, want: "App.tsx"},
		{name: "no router", opts: features.OptionSet{}, want: "AppNoRouter.tsx"},
		{name: "custom router", opts: features.OptionSet{Router: true, Template: "Shell"}, want: "Shell.tsx"},
		{name: "custom no router", opts: features.OptionSet{Template: "Shell"}, want: "ShellNoRouter.tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntryViewVariant(tt.opts))
		})
	}
}

func TestMaterialize_CopiesSelectedFolders(t *testing.T) {
	src := templateRoot(t)
	dst := memfs.New()

	report, err := New(src, dst).Materialize(context.Background(), []string{"core", "router"}, features.OptionSet{Router: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "router"}, report.Installed)
	assert.Equal(t, "App.tsx", report.EntryView)
	assert.Empty(t, report.Backup)
	assert.False(t, report.Warnings())

	assert.ElementsMatch(t, []string{
		"package.json",
		"src/main.tsx",
		"src/routes.tsx",
		"src/App.tsx",
	}, testutil.ListFS(t, dst))
	assert.ElementsMatch(t, testutil.ListFS(t, dst), report.Files)
	assert.Equal(t, "router view", testutil.ReadFS(t, dst, EntryViewPath))
}

func TestMaterialize_MergeSemantics(t *testing.T) {
	src := templateRoot(t)
	dst := memfs.New()
	testutil.WriteFS(t, dst, map[string]string{
		"README.md":    "mine",
		"package.json": "old",
	})

	_, err := New(src, dst).Materialize(context.Background(), []string{"core"}, features.OptionSet{})
	require.NoError(t, err)

	assert.Equal(t, "mine", testutil.ReadFS(t, dst, "README.md"), "files absent from the template survive")
	assert.Equal(t, `{"name":"app"}`, testutil.ReadFS(t, dst, "package.json"), "same-path files are overwritten")
	assert.Equal(t, "plain view", testutil.ReadFS(t, dst, EntryViewPath))
}

func TestMaterialize_SkipsSymlinks(t *testing.T) {
	src := templateRoot(t)
	require.NoError(t, src.Symlink("/etc/passwd", "core/src/secret.tsx"))
	require.NoError(t, src.Symlink("/etc", "core/config"))
	dst := memfs.New()

	report, err := New(src, dst).Materialize(context.Background(), []string{"core"}, features.OptionSet{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"core/src/secret.tsx", "core/config"}, report.Links)
	assert.True(t, report.Warnings())
	assert.ElementsMatch(t, []string{
		"package.json",
		"src/main.tsx",
		"src/App.tsx",
	}, testutil.ListFS(t, dst))
}

func TestMaterialize_SymlinkedEntryViewRejected(t *testing.T) {
	src := memfs.New()
	testutil.WriteFS(t, src, map[string]string{"core/src/main.tsx": "main"})
	require.NoError(t, src.Symlink("/etc/passwd", "AppNoRouter.tsx"))

	_, err := New(src, memfs.New()).Materialize(context.Background(), []string{"core"}, features.OptionSet{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrRootViewMissing)
}

func TestMaterialize_BackupNotDelete(t *testing.T) {
	src := templateRoot(t)
	dst := memfs.New()
	testutil.WriteFS(t, dst, map[string]string{
		EntryViewPath:                "existing content C",
		EntryViewPath + BackupSuffix: "stale backup",
	})

	report, err := New(src, dst).Materialize(context.Background(), nil, features.OptionSet{Router: true})
	require.NoError(t, err)

	assert.Equal(t, "src/App.tsx.bak", report.Backup)
	assert.Equal(t, "router view", testutil.ReadFS(t, dst, EntryViewPath))
	assert.Equal(t, "existing content C", testutil.ReadFS(t, dst, "src/App.tsx.bak"))
}

func TestMaterialize_MissingFolderSkipped(t *testing.T) {
	src := templateRoot(t)
	dst := memfs.New()

	report, err := New(src, dst).Materialize(context.Background(), []string{"core", "pwa"}, features.OptionSet{PWA: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"core"}, report.Installed)
	assert.Equal(t, []string{"pwa"}, report.Missing)
	assert.True(t, report.Warnings())
}

func TestMaterialize_PartialFailureTolerance(t *testing.T) {
	src := &failingFS{Filesystem: templateRoot(t), prefix: "payment"}
	dst := memfs.New()

	report, err := New(src, dst).Materialize(context.Background(),
		[]string{"core", "payment", "router"}, features.OptionSet{Router: true, Payment: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "router"}, report.Installed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "payment", report.Failures[0].Folder)
	assert.ErrorIs(t, report.Failures[0], errInjected)
	assert.True(t, report.Warnings())

	files := testutil.ListFS(t, dst)
	assert.Contains(t, files, "src/main.tsx")
	assert.Contains(t, files, "src/routes.tsx")
	assert.NotContains(t, files, "src/checkout.tsx")
}

func TestMaterialize_RootViewMissing(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		opts  features.OptionSet
	}{
		{
			name:  "router variant absent while plain variant present",
			files: map[string]string{"core/a.txt": "a", "AppNoRouter.tsx": "plain"},
			opts:  features.OptionSet{Router: true},
		},
		{
			name:  "plain variant absent",
			files: map[string]string{"core/a.txt": "a", "App.tsx": "router"},
			opts:  features.OptionSet{},
		},
		{
			name:  "custom template absent",
			files: map[string]string{"core/a.txt": "a", "App.tsx": "router", "AppNoRouter.tsx": "plain"},
			opts:  features.OptionSet{Template: "Dashboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := memfs.New()
			testutil.WriteFS(t, src, tt.files)
			dst := memfs.New()
			testutil.WriteFS(t, dst, map[string]string{EntryViewPath: "keep me"})

			report, err := New(src, dst).Materialize(context.Background(), []string{"core"}, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrRootViewMissing)
			assert.Equal(t, oerrors.ExitRootViewMissing, oerrors.ExitCodeFromError(err))

			require.NotNil(t, report)
			assert.Equal(t, []string{"core"}, report.Installed)
			assert.Equal(t, "keep me", testutil.ReadFS(t, dst, EntryViewPath), "existing entry view untouched")
		})
	}
}

func TestMaterialize_EntryViewCopyFailureIsFatal(t *testing.T) {
	src := &failingFS{Filesystem: templateRoot(t), prefix: "AppNoRouter"}
	dst := memfs.New()

	_, err := New(src, dst).Materialize(context.Background(), []string{"core"}, features.OptionSet{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrRootViewMissing)
	assert.ErrorIs(t, err, errInjected)
}

func TestMaterialize_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(templateRoot(t), memfs.New()).Materialize(ctx, []string{"core"}, features.OptionSet{})
	assert.ErrorIs(t, err, context.Canceled)
}

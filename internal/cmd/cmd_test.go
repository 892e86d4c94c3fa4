package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boilrkit/cli/internal/cmdtypes"
	"github.com/boilrkit/cli/internal/config"
	"github.com/boilrkit/cli/internal/testutil"
)

// testEnv isolates a command run from the user's home directory,
// environment and network.
type testEnv struct {
	home      string
	templates string
	cache     string
	work      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		home:      t.TempDir(),
		templates: filepath.Join(t.TempDir(), "templates"),
		cache:     filepath.Join(t.TempDir(), "cache"),
		work:      t.TempDir(),
	}
	t.Setenv("HOME", env.home)
	for _, key := range []string{
		config.EnvConfig,
		config.EnvTemplatesRepo,
		config.EnvTemplatesBranch,
		config.EnvTemplatesPath,
		config.EnvGitToken,
	} {
		t.Setenv(key, "")
	}

	testutil.TemplateTree(t, env.templates)
	return env
}

// run executes the root command with args and returns stdout, stderr and
// the error. Clones always fail, so templates come from env.templates.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfg := &cmdtypes.GlobalConfig{
		Git:       testutil.OfflineGit{},
		Fallbacks: []string{e.templates},
	}
	root := newRootCmd(cfg)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--timestamps=false"}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var exitErr *cmdtypes.ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %T: %v", err, err)
	require.Equal(t, code, exitErr.Code, "unexpected exit code for %v", err)
}

package cmdutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boilrkit/cli/internal/cmdtypes"
	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/materialize"
	"github.com/boilrkit/cli/internal/normalize"
	"github.com/boilrkit/cli/internal/output"
	"github.com/boilrkit/cli/internal/scaffold"
)

func TestFail(t *testing.T) {
	var logBuf bytes.Buffer
	output.SetupLogging(output.LogConfig{Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&logBuf)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "plain error", err: errors.New("boom"), wantCode: oerrors.ExitGeneralError},
		{name: "template unavailable", err: oerrors.ErrTemplateUnavailable, wantCode: oerrors.ExitTemplateUnavailable},
		{name: "root view missing", err: &oerrors.DetailError{Type: "root view missing", Message: "m", Cause: oerrors.ErrRootViewMissing}, wantCode: oerrors.ExitRootViewMissing},
		{name: "source config", err: oerrors.NewSourceConfigError("bad", "x", ""), wantCode: oerrors.ExitValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Fail("create failed", tt.err)

			var exitErr *cmdtypes.ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.wantCode, exitErr.Code)
			assert.True(t, exitErr.Printed)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.Contains(t, logBuf.String(), "create failed")
}

func TestFileDescriptions(t *testing.T) {
	result := &scaffold.Result{
		Materialized: &materialize.Report{
			Files:     []string{"package.json", "src/main", "src/App.tsx"},
			EntryView: "AppNoRouter.tsx",
			Backup:    "src/App.tsx.bak",
		},
		Normalized: &normalize.Report{
			Renamed: []normalize.Rename{{From: "src/main", To: "src/main.tsx", Rule: "component"}},
		},
	}

	assert.Equal(t, map[string]string{
		"package.json":    "",
		"src/main.tsx":    "renamed from main",
		"src/App.tsx":     "Entry view (AppNoRouter.tsx)",
		"src/App.tsx.bak": "Previous entry view",
	}, FileDescriptions(result))

	assert.Empty(t, FileDescriptions(&scaffold.Result{}))
}

func TestNewEngineWithGit_RequiresGit(t *testing.T) {
	_, err := NewEngineWithGit(&cmdtypes.GlobalConfig{}, nil)
	assert.Error(t, err)
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	PrintSelection(&buf, features.Selection{
		Core:     []string{"core"},
		Optional: []string{"router"},
		Skipped:  []string{"payment"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "core")
	assert.Contains(t, lines[0], output.StatusCore)
	assert.Contains(t, lines[1], "router")
	assert.Contains(t, lines[1], output.StatusInstalled)
	assert.Contains(t, lines[2], "payment")
	assert.Contains(t, lines[2], output.StatusSkipped)
}

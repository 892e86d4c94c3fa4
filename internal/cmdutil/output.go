package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"path"

	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/materialize"
	"github.com/boilrkit/cli/internal/output"
	"github.com/boilrkit/cli/internal/scaffold"
)

// Fail logs err and returns it as an already printed ExitError carrying the
// exit code its sentinel maps to.
func Fail(msg string, err error) error {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg)
		output.Details(detail.Error())
	} else {
		output.Error(msg, "error", err)
	}

	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}

// PrintSelection writes one line per template folder with its status.
func PrintSelection(w io.Writer, sel features.Selection) {
	for _, name := range sel.Core {
		fmt.Fprintln(w, output.FormatFolderLine(name, output.StatusCore))
	}
	for _, name := range sel.Optional {
		fmt.Fprintln(w, output.FormatFolderLine(name, output.StatusInstalled))
	}
	for _, name := range sel.Skipped {
		fmt.Fprintln(w, output.FormatFolderLine(name, output.StatusSkipped))
	}
}

// PrintWarnings logs every non-fatal condition of a run.
func PrintWarnings(result *scaffold.Result) {
	for _, w := range result.Warnings() {
		output.Warn(w)
	}
}

// FileDescriptions maps the installed files of a run to the tree
// descriptions shown after create.
func FileDescriptions(result *scaffold.Result) map[string]string {
	files := make(map[string]string)
	if result.Materialized == nil {
		return files
	}

	renamed := make(map[string]string)
	if result.Normalized != nil {
		for _, r := range result.Normalized.Renamed {
			renamed[r.From] = r.To
		}
	}

	for _, f := range result.Materialized.Files {
		desc := ""
		if to, ok := renamed[f]; ok {
			desc = "renamed from " + path.Base(f)
			f = to
		}
		files[f] = desc
	}

	if result.Materialized.EntryView != "" {
		files[materialize.EntryViewPath] = fmt.Sprintf("Entry view (%s)", result.Materialized.EntryView)
	}
	if result.Materialized.Backup != "" {
		files[result.Materialized.Backup] = "Previous entry view"
	}

	return files
}

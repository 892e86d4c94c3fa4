// Package materialize copies selected template folders into a destination
// project and installs the entry view.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	oerrors "github.com/boilrkit/cli/internal/errors"
	"github.com/boilrkit/cli/internal/features"
	"github.com/boilrkit/cli/internal/output"
)

const (
	// EntryViewPath is the destination of the installed entry view.
	EntryViewPath = "src/App.tsx"

	// BackupSuffix is appended to a displaced entry view.
	BackupSuffix = ".bak"

	noRouterSuffix = "NoRouter"
	viewExtension  = ".tsx"
)

// EntryViewVariant returns the template-root file name of the entry view
// selected by opts: <Template>.tsx with routing, <Template>NoRouter.tsx without.
func EntryViewVariant(opts features.OptionSet) string {
	name := opts.TemplateName()
	if !opts.Router {
		name += noRouterSuffix
	}
	return name + viewExtension
}

// FolderFailure records a folder whose copy failed. It is reported, never
// returned.
type FolderFailure struct {
	Folder string
	Err    error
}

// Error implements the error interface.
func (f *FolderFailure) Error() string {
	return fmt.Sprintf("copying folder %s: %v", f.Folder, f.Err)
}

// Unwrap returns the underlying error.
func (f *FolderFailure) Unwrap() error {
	return f.Err
}

// Report describes what a materialization did.
type Report struct {
	// Installed are the folders copied completely.
	Installed []string

	// Missing are selected folders absent from the template root.
	Missing []string

	// Failures are folders whose copy failed part way.
	Failures []*FolderFailure

	// Files are destination paths written, slash separated.
	Files []string

	// EntryView is the template variant installed at EntryViewPath.
	EntryView string

	// Backup is the path the previous entry view was moved to, if any.
	Backup string

	// Links are template symlinks that were not copied, as template paths.
	Links []string
}

// Warnings reports whether any non-fatal condition occurred.
func (r *Report) Warnings() bool {
	return len(r.Missing) > 0 || len(r.Failures) > 0 || len(r.Links) > 0
}

// Materializer copies from a template root into a destination project.
type Materializer struct {
	src billy.Filesystem
	dst billy.Filesystem
}

// New creates a Materializer reading from src and writing to dst.
func New(src, dst billy.Filesystem) *Materializer {
	return &Materializer{src: src, dst: dst}
}

// Materialize copies every folder in folders into the destination root
// with merge semantics, then installs the entry view chosen by opts.
//
// Missing folders and folder copy failures are logged and recorded in the
// report. A missing or uninstallable entry view is returned as a
// root view missing error; the report is still returned with it.
func (m *Materializer) Materialize(ctx context.Context, folders []string, opts features.OptionSet) (*Report, error) {
	log := output.StageLogger("materialize")
	report := &Report{}

	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		info, err := m.src.Stat(folder)
		if err != nil || !info.IsDir() {
			log.Warn("skipping missing folder", "folder", folder, "path", m.srcPath(folder))
			report.Missing = append(report.Missing, folder)
			continue
		}

		written, err := m.copyFolder(folder, report)
		report.Files = append(report.Files, written...)
		if err != nil {
			log.Warn("failed to copy folder", "folder", folder, "error", err)
			report.Failures = append(report.Failures, &FolderFailure{Folder: folder, Err: err})
			continue
		}

		log.Debug("installed folder", "folder", folder, "files", len(written))
		report.Installed = append(report.Installed, folder)
	}

	if err := m.installEntryView(opts, report); err != nil {
		return report, err
	}

	return report, nil
}

// copyFolder copies the contents of folder into the destination root.
// It returns the destination paths written before any error. Symlinks are
// not followed; they are recorded in report.Links and skipped.
func (m *Materializer) copyFolder(folder string, report *Report) ([]string, error) {
	var written []string

	err := util.Walk(m.src, folder, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			output.StageLogger("materialize").Warn("skipping symlink in template", "path", m.srcPath(p))
			report.Links = append(report.Links, filepath.ToSlash(p))
			return nil
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(folder, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if err := copyFile(m.src, p, m.dst, rel, info.Mode().Perm()); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})

	return written, err
}

func (m *Materializer) installEntryView(opts features.OptionSet, report *Report) error {
	log := output.StageLogger("materialize")
	variant := EntryViewVariant(opts)

	info, err := m.src.Lstat(variant)
	if err != nil || !info.Mode().IsRegular() {
		return rootViewMissing(m.srcPath(variant), "entry view variant not found in template root",
			fmt.Sprintf("Add %s to the template repository as a regular file or choose another template with --template", variant), err)
	}

	if _, err := m.dst.Stat(EntryViewPath); err == nil {
		backup := EntryViewPath + BackupSuffix
		if _, err := m.dst.Stat(backup); err == nil {
			if err := m.dst.Remove(backup); err != nil {
				return rootViewMissing(backup, "could not replace previous backup", "", err)
			}
		}
		if err := m.dst.Rename(EntryViewPath, backup); err != nil {
			return rootViewMissing(EntryViewPath, "could not back up existing entry view", "", err)
		}
		log.Info("backed up existing entry view", "path", backup)
		report.Backup = backup
	}

	if err := copyFile(m.src, variant, m.dst, EntryViewPath, info.Mode().Perm()); err != nil {
		return rootViewMissing(EntryViewPath, "could not install entry view", "", err)
	}

	log.Debug("installed entry view", "variant", variant, "path", EntryViewPath)
	report.EntryView = variant
	report.Files = append(report.Files, EntryViewPath)
	return nil
}

func (m *Materializer) srcPath(name string) string {
	return path.Join(filepath.ToSlash(m.src.Root()), name)
}

func rootViewMissing(location, message, hint string, cause error) error {
	causes := []error{oerrors.ErrRootViewMissing}
	if cause != nil {
		causes = append(causes, cause)
	}
	return &oerrors.DetailError{
		Type:     "root view missing",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    errors.Join(causes...),
	}
}

// copyFile copies srcName from src to dstName in dst, creating parent
// directories and truncating any existing file.
func copyFile(src billy.Filesystem, srcName string, dst billy.Filesystem, dstName string, perm os.FileMode) error {
	in, err := src.Open(srcName)
	if err != nil {
		return err
	}
	defer in.Close()

	if dir := path.Dir(dstName); dir != "." {
		if err := dst.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if perm == 0 {
		perm = 0o644
	}
	out, err := dst.OpenFile(dstName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dstName, err)
	}
	return out.Close()
}

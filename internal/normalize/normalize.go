package normalize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/boilrkit/cli/internal/output"
)

// backupSuffix marks files displaced during materialization.
const backupSuffix = ".bak"

// Rename is one file renamed by the normalizer.
type Rename struct {
	From string
	To   string
	Rule string
}

// Skip is a file the normalizer could not handle. Skips are reported, never
// returned as errors.
type Skip struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (s Skip) Error() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// Report describes one normalization pass.
type Report struct {
	Renamed []Rename
	Skipped []Skip
}

// Normalizer applies a rule table to the files of a filesystem.
type Normalizer struct {
	fs    billy.Filesystem
	rules Rules
}

// New creates a Normalizer over fs using DefaultRules.
func New(fs billy.Filesystem) *Normalizer {
	return NewWithRules(fs, DefaultRules())
}

// NewWithRules creates a Normalizer with a custom rule table.
func NewWithRules(fs billy.Filesystem, rules Rules) *Normalizer {
	return &Normalizer{fs: fs, rules: rules}
}

// Normalize walks root depth-first and renames every candidate file to
// carry the extension chosen by the rule table. A missing root is not an
// error. Per-file failures are logged and recorded as skips.
func (n *Normalizer) Normalize(ctx context.Context, root string) (*Report, error) {
	log := output.StageLogger("normalize")
	report := &Report{}

	if _, err := n.fs.Stat(root); err != nil {
		log.Debug("nothing to normalize", "path", root)
		return report, nil
	}

	var candidates []string
	err := util.Walk(n.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path", "path", p, "error", err)
			report.Skipped = append(report.Skipped, Skip{Path: p, Err: err})
			return nil
		}
		if info.IsDir() || !n.isCandidate(info.Name()) {
			return nil
		}
		candidates = append(candidates, p)
		return nil
	})
	if err != nil {
		return report, err
	}

	for _, p := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rename, err := n.normalizeFile(p)
		if err != nil {
			log.Warn("could not normalize file", "path", p, "error", err)
			report.Skipped = append(report.Skipped, Skip{Path: p, Err: err})
			continue
		}
		log.Debug("renamed file", "from", rename.From, "to", rename.To, "rule", rename.Rule)
		report.Renamed = append(report.Renamed, rename)
	}

	return report, nil
}

// isCandidate reports whether name should be classified. Files with any
// extension, known or not, are left alone, as are dotfiles and backups.
func (n *Normalizer) isCandidate(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, backupSuffix) {
		return false
	}
	return filepath.Ext(name) == ""
}

func (n *Normalizer) normalizeFile(p string) (Rename, error) {
	content, err := n.read(p)
	if err != nil {
		return Rename{}, err
	}

	ext, rule := n.rules.Classify(content)
	target := p + ext

	if _, err := n.fs.Stat(target); err == nil {
		return Rename{}, fmt.Errorf("target %s already exists", target)
	}
	if err := n.fs.Rename(p, target); err != nil {
		return Rename{}, err
	}

	return Rename{From: filepath.ToSlash(p), To: filepath.ToSlash(target), Rule: rule}, nil
}

func (n *Normalizer) read(p string) (string, error) {
	f, err := n.fs.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// FolderTable maps optional template folder names to the flag that gates
// them. Folders not listed are core and always installed.
type FolderTable map[string]Flag

// DefaultFolderTable is the folder -> flag table for the boilrkit templates.
func DefaultFolderTable() FolderTable {
	return FolderTable{
		"firebase": FlagFirebase,
		"router":   FlagRouter,
		"ai":       FlagAI,
		"pwa":      FlagPWA,
		"payment":  FlagPayment,
	}
}

// Flag returns the gating flag of folder and whether it is optional.
func (t FolderTable) Flag(folder string) (Flag, bool) {
	f, ok := t[folder]
	return f, ok
}

// Validate checks that every entry names a known flag and no flag gates
// two folders.
func (t FolderTable) Validate() error {
	seen := make(map[Flag]string, len(t))
	for folder, flag := range t {
		if _, err := ParseFlag(string(flag)); err != nil {
			return fmt.Errorf("folder %q: %w", folder, err)
		}
		if other, dup := seen[flag]; dup {
			return fmt.Errorf("folders %q and %q are both gated by %q", other, folder, flag)
		}
		seen[flag] = folder
	}
	return nil
}

// Selection is the outcome of folder selection over a template root.
type Selection struct {
	// Core are folders installed unconditionally.
	Core []string

	// Optional are optional folders whose flag is enabled.
	Optional []string

	// Skipped are optional folders whose flag is disabled.
	Skipped []string
}

// Folders returns every folder to install: core first, then optional.
func (s Selection) Folders() []string {
	out := make([]string, 0, len(s.Core)+len(s.Optional))
	out = append(out, s.Core...)
	return append(out, s.Optional...)
}

// Empty reports whether the template root had no folders at all.
func (s Selection) Empty() bool {
	return len(s.Core) == 0 && len(s.Optional) == 0 && len(s.Skipped) == 0
}

// Selector classifies the top-level folders of a template root.
type Selector struct {
	table FolderTable
}

// NewSelector creates a Selector using table. A nil table means
// DefaultFolderTable.
func NewSelector(table FolderTable) *Selector {
	if table == nil {
		table = DefaultFolderTable()
	}
	return &Selector{table: table}
}

// Select enumerates the immediate subdirectories of root and splits them
// into core, enabled optional and skipped optional folders. Each list is
// sorted by name. Dot-directories such as .git and .github are repository
// metadata and never selected.
func (s *Selector) Select(root billy.Filesystem, opts OptionSet) (Selection, error) {
	entries, err := root.ReadDir("/")
	if err != nil {
		return Selection{}, fmt.Errorf("reading template root %s: %w", root.Root(), err)
	}

	var sel Selection
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		flag, optional := s.table.Flag(name)
		switch {
		case !optional:
			sel.Core = append(sel.Core, name)
		case opts.Enabled(flag):
			sel.Optional = append(sel.Optional, name)
		default:
			sel.Skipped = append(sel.Skipped, name)
		}
	}

	sort.Strings(sel.Core)
	sort.Strings(sel.Optional)
	sort.Strings(sel.Skipped)

	return sel, nil
}

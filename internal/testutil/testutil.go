// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes every path -> content entry under dir.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
}

// WriteFS writes every path -> content entry into fs.
func WriteFS(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// ReadFS returns the content of name in fs, failing the test if it cannot be read.
func ReadFS(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	f, err := fs.Open(name)
	if err != nil {
		t.Fatalf("failed to open %s: %v", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// ListFS returns every regular file path in fs, slash separated and
// relative to its root.
func ListFS(t *testing.T, fs billy.Filesystem) []string {
	t.Helper()
	var files []string
	if _, err := fs.Stat("/"); err != nil {
		// memfs has no root entry until the first file is written.
		return files
	}
	err := util.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, relErr := filepath.Rel("/", path)
			if relErr != nil {
				return relErr
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk filesystem: %v", err)
	}
	return files
}

// OfflineGit is a version-control client whose clone and update always fail,
// forcing acquisition onto the local fallbacks.
type OfflineGit struct{}

// Clone always fails.
func (OfflineGit) Clone(context.Context, string, string, string) error {
	return errors.New("network unreachable")
}

// Update always fails.
func (OfflineGit) Update(context.Context, string, string) error {
	return errors.New("network unreachable")
}

// RemoteURL always fails.
func (OfflineGit) RemoteURL(string) (string, error) {
	return "", errors.New("no checkout")
}

// TemplateTree writes a small template repository under dir: one core
// folder, two optional folders and both entry-view variants. Each folder's
// contents land at the project root when installed.
func TemplateTree(t *testing.T, dir string) {
	t.Helper()
	WriteTree(t, dir, map[string]string{
		"core/package.json":          `{"name":"app"}`,
		"core/src/main":              "import React from 'react'\nexport default function Main() {}\n",
		"core/src/lib/api":           "export const api = {}\n",
		"router/src/routes":          "export const routes = []\n",
		"firebase/src/firebase/init": "const app = initializeApp()\n",
		"App.tsx":                    "// router\n",
		"AppNoRouter.tsx":            "// no router\n",
	})
}

package version

import (
	"bytes"
	"os/exec"
	"regexp"
	"strings"
)

// gitVersionRegex matches git version output like "git version 2.43.0".
var gitVersionRegex = regexp.MustCompile(`\d+\.\d+\.\d+(?:\.[a-zA-Z0-9.]+)?`)

// GitBinaryInfo describes the git executable on PATH. It is only needed
// for templates cloned from local paths or file:// URLs.
type GitBinaryInfo struct {
	Version string `json:"version"`
	Path    string `json:"path"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// DetectGitBinary finds the git binary and reads its version.
func DetectGitBinary() GitBinaryInfo {
	path, err := exec.LookPath("git")
	if err != nil {
		return GitBinaryInfo{
			Found:   false,
			Message: "git binary not found in PATH (needed only for local template repositories)",
		}
	}

	version, err := gitVersion(path)
	if err != nil {
		return GitBinaryInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get git version: " + err.Error(),
		}
	}

	return GitBinaryInfo{
		Version: version,
		Path:    path,
		Found:   true,
	}
}

// gitVersion executes 'git --version' and extracts the version string.
func gitVersion(gitPath string) (string, error) {
	cmd := exec.Command(gitPath, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion extracts the version number from git version output.
func extractVersion(output string) (string, error) {
	// git version output format:
	// git version 2.43.0
	// git version 2.39.3 (Apple Git-146)
	line := strings.SplitN(output, "\n", 2)[0]

	match := gitVersionRegex.FindString(line)
	if match == "" {
		return "", &versionParseError{output: output}
	}

	return match, nil
}

// versionParseError indicates failure to parse git version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse git version from output: " + e.output
}

// String returns a human-readable git binary info string.
func (g GitBinaryInfo) String() string {
	if !g.Found {
		return "  git:       not found"
	}
	if g.Version == "" {
		return "  git:       " + g.Path + " (" + g.Message + ")"
	}
	return "  git:       " + g.Version + " (" + g.Path + ")"
}

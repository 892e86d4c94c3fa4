package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("my-app", nil))
}

func TestRenderFileTree_DirectoriesFirst(t *testing.T) {
	out := RenderFileTree("my-app", map[string]string{
		"README.md":          "",
		"src/App.tsx":        "entry view",
		"src/App.tsx.bak":    "previous entry view",
		"src/pages/Home.tsx": "",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "my-app/")
	assert.Contains(t, lines[1], "src/", "directories sort before files")
	assert.Contains(t, out, "pages/")
	assert.Contains(t, out, "entry view")
	assert.Contains(t, out, "previous entry view")
	assert.Contains(t, lines[len(lines)-1], "README.md")
}

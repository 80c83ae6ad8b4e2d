package docstudio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestInspectProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"))
	writeFile(t, filepath.Join(root, "Dockerfile"))
	writeFile(t, filepath.Join(root, "README.md"))
	writeFile(t, filepath.Join(root, "docs", "proposal.docx"))
	writeFile(t, filepath.Join(root, "assets", "logo.svg"))
	writeFile(t, filepath.Join(root, "assets", "photo.jpg")) // not brand-named
	writeFile(t, filepath.Join(root, "node_modules", "dep", "README.md"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ProjectConfigDir), 0o755))

	info, err := NewInspector().Inspect(root)
	require.NoError(t, err)

	assert.Contains(t, info.Signals, "go.mod (Go module)")
	assert.Contains(t, info.Signals, "Dockerfile (container build)")
	assert.True(t, info.HasConfig)

	docPaths := make([]string, 0, len(info.Documents))
	for _, d := range info.Documents {
		docPaths = append(docPaths, d.Path)
	}
	assert.Contains(t, docPaths, "README.md")
	assert.Contains(t, docPaths, filepath.Join("docs", "proposal.docx"))
	// ignored directories are not walked
	assert.NotContains(t, docPaths, filepath.Join("node_modules", "dep", "README.md"))

	assert.Equal(t, []string{filepath.Join("assets", "logo.svg")}, info.BrandAssets)
}

func TestInspectDepthLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "c", "d", "deep.md"))

	inspector := NewInspector()
	inspector.MaxDepth = 2
	info, err := inspector.Inspect(root)
	require.NoError(t, err)
	assert.Empty(t, info.Documents)
}

func TestInspectRejectsFiles(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	writeFile(t, file)

	_, err := NewInspector().Inspect(file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestProjectInfoOutputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"))

	info, err := NewInspector().Inspect(root)
	require.NoError(t, err)

	raw, err := info.JSON()
	require.NoError(t, err)
	assert.Contains(t, raw, `"README.md"`)

	pretty := info.Pretty()
	assert.Contains(t, pretty, "README.md")
	assert.Contains(t, pretty, "config init")
}

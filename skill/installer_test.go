package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := `---
name: doc-studio
description: Generate styled documents from templates and JSON data
version: 1.0.0
---

# Doc Studio

Usage notes go here.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(manifest), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "readme.txt"), []byte("templates"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "__pycache__"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "__pycache__", "junk.pyc"), []byte("x"), 0o644))
	return dir
}

func TestReadManifest(t *testing.T) {
	bundle := newBundle(t)

	m, err := ReadManifest(bundle)
	require.NoError(t, err)
	assert.Equal(t, "doc-studio", m.Name)
	assert.Equal(t, "Generate styled documents from templates and JSON data", m.Description)
	assert.Equal(t, "1.0.0", m.Version)
}

func TestReadManifestRejectsMissingFrontmatter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("# no frontmatter\n"), 0o644))

	_, err := ReadManifest(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontmatter")
}

func TestLookupTool(t *testing.T) {
	tool, err := LookupTool("claude-code")
	require.NoError(t, err)
	assert.Equal(t, "Claude Code", tool.DisplayName)

	_, err = LookupTool("vim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown CLI tool")
}

func TestInstallCopy(t *testing.T) {
	home := t.TempDir()
	in := &Installer{BundleDir: newBundle(t), HomeDir: home}

	target, err := in.Install("codex", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".codex", "skills", "doc-studio"), target)

	assert.FileExists(t, filepath.Join(target, "SKILL.md"))
	assert.FileExists(t, filepath.Join(target, "templates", "readme.txt"))
	assert.NoDirExists(t, filepath.Join(target, "__pycache__"))

	fi, err := os.Lstat(target)
	require.NoError(t, err)
	assert.Zero(t, fi.Mode()&os.ModeSymlink)
}

func TestInstallSymlink(t *testing.T) {
	home := t.TempDir()
	bundle := newBundle(t)
	in := &Installer{BundleDir: bundle, HomeDir: home}

	target, err := in.Install("gemini", true)
	require.NoError(t, err)

	fi, err := os.Lstat(target)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)
	assert.FileExists(t, filepath.Join(target, "SKILL.md"))
}

func TestInstallReplacesExisting(t *testing.T) {
	home := t.TempDir()
	in := &Installer{BundleDir: newBundle(t), HomeDir: home}

	_, err := in.Install("opencode", true)
	require.NoError(t, err)

	target, err := in.Install("opencode", false)
	require.NoError(t, err)

	fi, err := os.Lstat(target)
	require.NoError(t, err)
	assert.Zero(t, fi.Mode()&os.ModeSymlink)
}

func TestInstallRejectsBundleWithoutManifest(t *testing.T) {
	in := &Installer{BundleDir: t.TempDir(), HomeDir: t.TempDir()}

	_, err := in.Install("codex", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest")
}

func TestUninstall(t *testing.T) {
	home := t.TempDir()
	in := &Installer{BundleDir: newBundle(t), HomeDir: home}

	target, err := in.Install("codex", false)
	require.NoError(t, err)

	removed, err := in.Uninstall("codex")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoDirExists(t, target)

	removed, err = in.Uninstall("codex")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUninstallSymlinkKeepsBundle(t *testing.T) {
	home := t.TempDir()
	bundle := newBundle(t)
	in := &Installer{BundleDir: bundle, HomeDir: home}

	_, err := in.Install("gemini", true)
	require.NoError(t, err)

	removed, err := in.Uninstall("gemini")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.FileExists(t, filepath.Join(bundle, "SKILL.md"))
}

func TestStatus(t *testing.T) {
	home := t.TempDir()
	in := &Installer{BundleDir: newBundle(t), HomeDir: home}

	_, err := in.Install("claude-code", true)
	require.NoError(t, err)
	_, err = in.Install("codex", false)
	require.NoError(t, err)

	statuses, err := in.Status()
	require.NoError(t, err)
	require.Len(t, statuses, len(Tools))

	byName := map[string]ToolStatus{}
	for _, st := range statuses {
		byName[st.Tool.Name] = st
	}
	assert.True(t, byName["claude-code"].Installed)
	assert.True(t, byName["claude-code"].Symlinked)
	assert.True(t, byName["codex"].Installed)
	assert.False(t, byName["codex"].Symlinked)
	assert.False(t, byName["gemini"].Installed)
}

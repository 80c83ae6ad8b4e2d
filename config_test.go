package docstudio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	m := NewConfigManager(t.TempDir())
	cfg := m.Load()
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "ja", cfg.Defaults.Language)
	assert.Equal(t, "chromium", cfg.Engines.PDF)
	assert.Equal(t, "word", cfg.Output.Subdirs["docx"])
	assert.ElementsMatch(t, BuiltinTemplateNames, cfg.Templates.Builtin)
}

func TestLoadToleratesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0o644))

	m := NewConfigManager(dir)
	cfg := m.Load()
	assert.Equal(t, DefaultConfig().Version, cfg.Version)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	m := NewConfigManager(dir)

	cfg := m.Load()
	cfg.Defaults.Language = "en"
	require.NoError(t, m.Save(cfg))

	fresh := NewConfigManager(dir)
	assert.Equal(t, "en", fresh.Load().Defaults.Language)
}

func TestGetSetDotPath(t *testing.T) {
	m := NewConfigManager(t.TempDir())

	assert.Equal(t, "Noto Sans JP", m.Get("defaults.font.primary"))
	assert.Equal(t, "./output", m.Get("output.base_path"))
	assert.Nil(t, m.Get("does.not.exist"))

	require.NoError(t, m.Set("defaults.font.primary", "IBM Plex Sans"))
	assert.Equal(t, "IBM Plex Sans", m.Get("defaults.font.primary"))

	// persisted across a fresh manager
	fresh := NewConfigManager(m.ConfigDir)
	assert.Equal(t, "IBM Plex Sans", fresh.Load().Defaults.Font.Primary)
}

func TestReset(t *testing.T) {
	m := NewConfigManager(t.TempDir())
	require.NoError(t, m.Set("defaults.language", "en"))
	require.NoError(t, m.Reset())
	assert.Equal(t, "ja", m.Get("defaults.language"))
}

func TestOutputPath(t *testing.T) {
	m := NewConfigManager(t.TempDir())
	assert.Equal(t, filepath.Join("output", "word"), filepath.Clean(m.OutputPath("docx")))
	assert.Equal(t, filepath.Join("output", "pdf"), filepath.Clean(m.OutputPath("pdf")))
	// unknown formats fall back to the format name
	assert.Equal(t, filepath.Join("output", "epub"), filepath.Clean(m.OutputPath("epub")))
}

func TestDefaultEngine(t *testing.T) {
	m := NewConfigManager(t.TempDir())
	assert.Equal(t, "chromium", m.DefaultEngine("pdf"))
	assert.Equal(t, "excelize", m.DefaultEngine("xlsx"))
	assert.Equal(t, "auto", m.DefaultEngine("epub"))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	m := NewConfigManager(dir)

	cfg := m.Load()
	cfg.Output.BasePath = filepath.Join(dir, "out")
	cfg.Templates.Path = filepath.Join(dir, "templates")
	cfg.Defaults.Language = "xx"
	require.NoError(t, m.Save(cfg))

	errs := m.Validate()
	assert.Len(t, errs, 3)

	require.NoError(t, os.MkdirAll(cfg.Output.BasePath, 0o755))
	require.NoError(t, os.MkdirAll(cfg.Templates.Path, 0o755))
	require.NoError(t, m.Set("defaults.language", "en"))

	assert.Empty(t, m.Validate())
}

func TestCreateProjectConfig(t *testing.T) {
	project := t.TempDir()
	m := NewConfigManager(t.TempDir())

	dir, err := m.CreateProjectConfig(project)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(project, ProjectConfigDir), dir)
	assert.FileExists(t, filepath.Join(dir, ConfigFileName))
}

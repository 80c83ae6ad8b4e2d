package template

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvilZip(t *testing.T, w io.Writer) {
	t.Helper()
	zw := zip.NewWriter(w)
	f, err := zw.Create("../outside.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestListBuiltins(t *testing.T) {
	m := NewManager("")
	infos, err := m.List(Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, infos)

	byName := map[string]Info{}
	for _, info := range infos {
		byName[info.Name] = info
	}
	for _, want := range []string{"whitepaper", "business_modern", "excel_dashboard", "revealjs_presentation", "proposal"} {
		info, ok := byName[want]
		require.True(t, ok, "missing builtin %s", want)
		assert.True(t, info.Builtin)
	}
}

func TestListFilters(t *testing.T) {
	m := NewManager("")

	pdfs, err := m.List(Filter{Format: "pdf"})
	require.NoError(t, err)
	require.NotEmpty(t, pdfs)
	for _, info := range pdfs {
		assert.Equal(t, "pdf", info.Format)
	}

	tagged, err := m.List(Filter{Tag: "dashboard"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "excel_dashboard", tagged[0].Name)
}

func TestCreateListDelete(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	created, err := m.Create("monthly-report", "pdf", "Monthly status report")
	require.NoError(t, err)
	assert.DirExists(t, created)
	assert.FileExists(t, filepath.Join(created, "manifest.json"))
	assert.FileExists(t, filepath.Join(created, "generate"))

	// builtins cannot be shadowed
	_, err = m.Create("whitepaper", "pdf", "")
	assert.ErrorContains(t, err, "builtin")

	// duplicate creation fails
	_, err = m.Create("monthly-report", "pdf", "")
	assert.ErrorContains(t, err, "already exists")

	info, err := m.Get("monthly-report")
	require.NoError(t, err)
	assert.False(t, info.Builtin)
	assert.Equal(t, "pdf", info.Format)

	require.NoError(t, m.Delete("monthly-report"))
	_, err = m.Get("monthly-report")
	assert.Error(t, err)

	assert.ErrorContains(t, m.Delete("whitepaper"), "builtin")
}

func TestExportImport(t *testing.T) {
	srcDir := t.TempDir()
	src := NewManager(srcDir)
	_, err := src.Create("shipper", "docx", "exported template")
	require.NoError(t, err)

	archive := filepath.Join(t.TempDir(), "shipper.zip")
	require.NoError(t, src.Export("shipper", archive))

	dstDir := t.TempDir()
	dst := NewManager(dstDir)
	name, err := dst.Import(archive)
	require.NoError(t, err)
	assert.Equal(t, "shipper", name)

	info, err := dst.Get("shipper")
	require.NoError(t, err)
	assert.Equal(t, "exported template", info.Description)
	assert.FileExists(t, filepath.Join(dstDir, "shipper", "generate"))
}

func TestImportRejectsEscapingPaths(t *testing.T) {
	// hand-build a malicious archive
	archive := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	writeEvilZip(t, f)
	f.Close()

	m := NewManager(t.TempDir())
	_, err = m.Import(archive)
	assert.ErrorContains(t, err, "escapes")
}

func TestDataSchema(t *testing.T) {
	assert.Contains(t, DataSchema("excel_dashboard"), "kpis")
	assert.Contains(t, DataSchema("proposal_template"), "milestones")
	assert.Contains(t, DataSchema("whitepaper"), "sections")
}

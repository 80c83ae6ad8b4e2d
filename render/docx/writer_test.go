package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/docstudio/render"
)

func readPart(t *testing.T, raw []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		return buf.String()
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestDocumentPackageStructure(t *testing.T) {
	doc := New()
	doc.Props.Title = "Structure Test"
	doc.AddHeading("Hello", 0)
	doc.AddParagraph("Body text with <angle> brackets & ampersands.")

	raw, err := doc.Bytes()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"docProps/core.xml",
	} {
		assert.True(t, names[want], "missing part %s", want)
	}

	body := readPart(t, raw, "word/document.xml")
	assert.Contains(t, body, `<w:pStyle w:val="Title"/>`)
	assert.Contains(t, body, "&lt;angle&gt; brackets &amp; ampersands")

	core := readPart(t, raw, "docProps/core.xml")
	assert.Contains(t, core, "<dc:title>Structure Test</dc:title>")
}

func TestTableRendering(t *testing.T) {
	doc := New()
	doc.AddTable(Table{
		Header: []string{"Phase", "Date"},
		Rows:   [][]string{{"Pilot", "2026-06-15"}},
	})

	raw, err := doc.Bytes()
	require.NoError(t, err)

	body := readPart(t, raw, "word/document.xml")
	assert.Contains(t, body, "<w:tbl>")
	assert.Contains(t, body, `<w:shd w:val="clear" w:fill="1E3A5F"/>`)
	assert.Contains(t, body, "Pilot")
	// a paragraph must follow the table
	assert.Contains(t, body, "</w:tbl><w:p/>")
}

func TestBuiltinDesignsRegistered(t *testing.T) {
	for _, name := range []string{"proposal", "manual", "resume", "proposal_template"} {
		renderer, ok := render.Builtin.Get(name)
		require.True(t, ok, "renderer %s not registered", name)
		assert.Equal(t, "docx", renderer.Meta().Format)
	}
}

func TestRenderProposalWritesDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "proposal.docx")
	err := render.Builtin.Render(context.Background(), "proposal", render.Job{
		OutputPath: out,
		Data:       render.Data{"title": "Override Title"},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	body := readPart(t, raw, "word/document.xml")
	assert.Contains(t, body, "Override Title")
	// sample data fills everything the override does not touch
	assert.Contains(t, body, "Northwind Trading")
}

func TestProposalTemplateBytesContainExpressions(t *testing.T) {
	raw, err := proposalTemplateDocx()
	require.NoError(t, err)
	body := readPart(t, raw, "word/document.xml")
	assert.Contains(t, body, "{{document_title}}")
	assert.True(t, strings.Contains(body, "{{for m in team_members}}"))
}

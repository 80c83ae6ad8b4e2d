package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/docstudio/render"
)

func parts(t *testing.T, raw []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = buf.String()
	}
	return out
}

func TestPresentationPackageStructure(t *testing.T) {
	p := New()
	p.Title = "Deck Test"
	slide := p.AddSlide()
	slide.Background = Fill{Color: "1E3A5F"}
	slide.Text(Inches(1), Inches(1), Inches(5), Inches(1), TextRun{Text: "Hello & welcome", Size: 24})

	raw, err := p.Bytes()
	require.NoError(t, err)
	got := parts(t, raw)

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		assert.Contains(t, got, want)
	}

	assert.Contains(t, got["ppt/slides/slide1.xml"], "Hello &amp; welcome")
	assert.Contains(t, got["ppt/slides/slide1.xml"], `<a:srgbClr val="1E3A5F"/>`)
	assert.Contains(t, got["ppt/presentation.xml"], `cx="12192000" cy="6858000"`)
	assert.Contains(t, got["docProps/core.xml"], "<dc:title>Deck Test</dc:title>")
}

func TestGradientFill(t *testing.T) {
	f := Fill{Color: "7C3AED", GradTo: "EC4899", GradAngle: 45}
	xml := f.xml()
	assert.Contains(t, xml, "<a:gradFill>")
	assert.Contains(t, xml, `<a:gs pos="100000"><a:srgbClr val="EC4899"/></a:gs>`)
	assert.Contains(t, xml, `ang="2700000"`)
}

func TestDeckDesignsRegistered(t *testing.T) {
	names := []string{
		"business_modern", "creative_gradient", "technical_dark",
		"minimalist", "corporate_formal", "advanced_business",
	}
	for _, name := range names {
		renderer, ok := render.Builtin.Get(name)
		require.True(t, ok, "renderer %s not registered", name)
		assert.Equal(t, "pptx", renderer.Meta().Format)
		assert.Equal(t, "ooxml", renderer.Meta().Engine)
	}
}

func TestRenderBusinessModern(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	err := render.Builtin.Render(context.Background(), "business_modern", render.Job{
		OutputPath: out,
		Data: render.Data{
			"title": "Override Deck",
			"sections": []any{
				map[string]any{"heading": "Only Section", "bullets": []any{"one", "two"}},
			},
		},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	got := parts(t, raw)

	// title + 1 section + closing
	assert.Contains(t, got, "ppt/slides/slide3.xml")
	assert.NotContains(t, got, "ppt/slides/slide4.xml")
	assert.Contains(t, got["ppt/slides/slide1.xml"], "Override Deck")
	assert.Contains(t, got["ppt/slides/slide2.xml"], "Only Section")
}

func TestAdvancedBusinessIncludesAgendaAndKPIs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	err := render.Builtin.Render(context.Background(), "advanced_business", render.Job{OutputPath: out})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	got := parts(t, raw)

	assert.Contains(t, got["ppt/slides/slide2.xml"], "Agenda")
	assert.Contains(t, got["ppt/slides/slide3.xml"], "Key Metrics")
	assert.Contains(t, got["ppt/slides/slide3.xml"], "$4.2M")
}

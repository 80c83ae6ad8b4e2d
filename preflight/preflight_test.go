package preflight

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
	_ "github.com/flanksource/docstudio/render/builtin"
)

func generate(t *testing.T, template, filename string) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), filename)
	err := render.Builtin.Render(context.Background(), template, render.Job{OutputPath: out})
	require.NoError(t, err)
	return out
}

func TestNewRejectsUnknownCheck(t *testing.T) {
	_, err := New("fonts", "nonsense")
	assert.ErrorContains(t, err, "unsupported check")

	c, err := New("fonts", "metadata")
	require.NoError(t, err)
	assert.True(t, c.enabled("fonts"))
	assert.False(t, c.enabled("links"))
}

func TestPreflightPDF(t *testing.T) {
	path := generate(t, "fpdf2_modern", "report.pdf")

	c, err := New()
	require.NoError(t, err)
	summary, err := c.Run(path)
	require.NoError(t, err)

	assert.Equal(t, "pdf", summary.Format)
	assert.True(t, summary.CanProceed, "findings: %+v", summary.Results)
	assert.NotEmpty(t, summary.Results)
	assert.Zero(t, summary.Counts[Error])
}

func TestPreflightPPTX(t *testing.T) {
	path := generate(t, "business_modern", "deck.pptx")

	c, err := New()
	require.NoError(t, err)
	summary, err := c.Run(path)
	require.NoError(t, err)

	assert.True(t, summary.CanProceed)
	var slideFinding *Result
	for i := range summary.Results {
		if summary.Results[i].Check == "accessibility" {
			slideFinding = &summary.Results[i]
			break
		}
	}
	require.NotNil(t, slideFinding)
	assert.Contains(t, slideFinding.Message, "slides")
}

func TestPreflightPPTXFonts(t *testing.T) {
	path := generate(t, "technical_dark", "deck.pptx")

	c, err := New("fonts")
	require.NoError(t, err)
	summary, err := c.Run(path)
	require.NoError(t, err)

	var fonts *Result
	for i := range summary.Results {
		if summary.Results[i].Check == "fonts" {
			fonts = &summary.Results[i]
		}
	}
	require.NotNil(t, fonts, "slide typefaces should be inventoried")
	assert.Equal(t, Info, fonts.Severity)
	assert.Contains(t, fonts.Message, "Consolas")
}

// writePPTXWithMedia builds a minimal presentation package with one
// embedded image of the given size.
func writePPTXWithMedia(t *testing.T, imageBytes int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range map[string][]byte{
		"docProps/core.xml":     []byte(`<cp:coreProperties><dc:title>Deck</dc:title><dc:creator>QA</dc:creator></cp:coreProperties>`),
		"ppt/slides/slide1.xml": []byte(`<p:sld></p:sld>`),
		"ppt/media/image1.png":  bytes.Repeat([]byte{0xAB}, imageBytes),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestPreflightPPTXLowResImages(t *testing.T) {
	c, err := New("images")
	require.NoError(t, err)

	summary, err := c.Run(writePPTXWithMedia(t, 512))
	require.NoError(t, err)
	var images *Result
	for i := range summary.Results {
		if summary.Results[i].Check == "images" {
			images = &summary.Results[i]
		}
	}
	require.NotNil(t, images)
	assert.Equal(t, Warning, images.Severity)
	assert.Contains(t, images.Message, "low resolution")

	summary, err = c.Run(writePPTXWithMedia(t, 64<<10))
	require.NoError(t, err)
	images = nil
	for i := range summary.Results {
		if summary.Results[i].Check == "images" {
			images = &summary.Results[i]
		}
	}
	require.NotNil(t, images)
	assert.Equal(t, Info, images.Severity)
	assert.Contains(t, images.Message, "adequate resolution")
}

func TestPreflightDOCX(t *testing.T) {
	path := generate(t, "proposal", "proposal.docx")

	c, err := New()
	require.NoError(t, err)
	summary, err := c.Run(path)
	require.NoError(t, err)

	assert.True(t, summary.CanProceed)

	messages := make([]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		messages = append(messages, r.Message)
	}
	assert.Contains(t, messages, "document uses heading styles")
}

func TestPreflightHTML(t *testing.T) {
	path := generate(t, "revealjs_presentation", "deck.html")

	c, err := New()
	require.NoError(t, err)
	summary, err := c.Run(path)
	require.NoError(t, err)

	assert.True(t, summary.CanProceed)

	var links *Result
	for i := range summary.Results {
		if summary.Results[i].Check == "links" {
			links = &summary.Results[i]
		}
	}
	require.NotNil(t, links, "reveal.js CDN assets should be inventoried")
	assert.Contains(t, links.Details, "cdn.jsdelivr.net")
}

func TestPreflightMissingFile(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	_, err = c.Run(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestPreflightUnsupportedExtension(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
	_, err = c.Run(path)
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestFixPDFMetadata(t *testing.T) {
	path := generate(t, "fpdf2_modern", "report.pdf")

	require.NoError(t, FixPDFMetadata(path, "Fixed Title", "Fixed Author"))

	c, err := New("metadata")
	require.NoError(t, err)
	summary, err := c.Run(path)
	require.NoError(t, err)

	messages := make([]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		messages = append(messages, r.Message)
	}
	assert.Contains(t, messages, "author: Fixed Author")
}

func TestFixPDFMetadataRequiresFields(t *testing.T) {
	assert.Error(t, FixPDFMetadata("whatever.pdf", "", ""))
}

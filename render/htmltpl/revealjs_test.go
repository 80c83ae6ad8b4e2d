package htmltpl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/docstudio/render"
)

func TestRevealJSRegistered(t *testing.T) {
	renderer, ok := render.Builtin.Get("revealjs_presentation")
	require.True(t, ok)
	assert.Equal(t, "html", renderer.Meta().Format)
}

func TestRenderRevealJS(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.html")
	err := render.Builtin.Render(context.Background(), "revealjs_presentation", render.Job{
		OutputPath: out,
		Data: render.Data{
			"title": "Override <Deck>",
			"theme": "white",
		},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "Override &lt;Deck&gt;")
	assert.Contains(t, html, "theme/white.css")
	assert.Contains(t, html, "Reveal.initialize")
	// sample sections survive when not overridden
	assert.Contains(t, html, "Shipped This Month")
}

func TestRenderRevealJSLanguageAndScheme(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.html")
	err := render.Builtin.Render(context.Background(), "revealjs_presentation", render.Job{
		OutputPath:  out,
		Language:    "ja",
		ColorScheme: "dark",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, `<html lang="ja">`)
	assert.Contains(t, html, "theme/night.css")
}

func TestRenderRevealJSDataThemeWins(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.html")
	err := render.Builtin.Render(context.Background(), "revealjs_presentation", render.Job{
		OutputPath:  out,
		ColorScheme: "dark",
		Data:        render.Data{"theme": "beige"},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "theme/beige.css")
}

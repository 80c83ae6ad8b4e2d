package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(name, format string) Func {
	return Func{
		Info: Meta{Name: name, Format: format},
		Fn:   func(ctx context.Context, job Job) error { return nil },
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(testRenderer("alpha", "pdf"))
	r.Register(testRenderer("beta", "pptx"))

	got, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "pdf", got.Meta().Format)

	_, ok = r.Get("gamma")
	assert.False(t, ok)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(testRenderer("zeta", "pdf"))
	r.Register(testRenderer("alpha", "pdf"))
	r.Register(testRenderer("mid", "html"))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}

func TestRegistryForFormat(t *testing.T) {
	r := NewRegistry()
	r.Register(testRenderer("a", "pdf"))
	r.Register(testRenderer("b", "pptx"))
	r.Register(testRenderer("c", "pdf"))

	pdfs := r.ForFormat("pdf")
	require.Len(t, pdfs, 2)
	assert.Equal(t, "a", pdfs[0].Meta().Name)
	assert.Equal(t, "c", pdfs[1].Meta().Name)
}

func TestRegistryRenderUnknown(t *testing.T) {
	r := NewRegistry()
	err := r.Render(context.Background(), "missing", Job{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestMergeDeep(t *testing.T) {
	base := Data{
		"title": "Sample",
		"theme": map[string]any{"primary": "1E3A5F", "accent": "D4A017"},
		"items": []any{"a", "b"},
	}
	override := Data{
		"title": "Custom",
		"theme": map[string]any{"accent": "FF0000"},
		"items": []any{"c"},
	}

	merged := Merge(base, override)
	assert.Equal(t, "Custom", merged.String("title", ""))
	assert.Equal(t, "1E3A5F", merged.Map("theme").String("primary", ""))
	assert.Equal(t, "FF0000", merged.Map("theme").String("accent", ""))
	assert.Equal(t, []string{"c"}, merged.Strings("items"))

	// base is not mutated
	assert.Equal(t, "Sample", base.String("title", ""))
	assert.Equal(t, "D4A017", base.Map("theme").String("accent", ""))
}

func TestDataAccessors(t *testing.T) {
	d := Data{
		"name":    "report",
		"count":   float64(3),
		"ratio":   0.25,
		"enabled": true,
		"rows": []any{
			map[string]any{"label": "one"},
			"not-an-object",
			map[string]any{"label": "two"},
		},
	}

	assert.Equal(t, "report", d.String("name", "fallback"))
	assert.Equal(t, "fallback", d.String("missing", "fallback"))
	assert.Equal(t, 3, d.Int("count", 0))
	assert.Equal(t, 7, d.Int("missing", 7))
	assert.InDelta(t, 0.25, d.Float("ratio", 0), 1e-9)
	assert.True(t, d.Bool("enabled", false))
	assert.False(t, d.Bool("missing", false))

	rows := d.Maps("rows")
	require.Len(t, rows, 2)
	assert.Equal(t, "one", rows[0].String("label", ""))

	assert.Empty(t, d.Map("missing"))
	assert.NotEmpty(t, d.JSON())
}

package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/docstudio"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"pdf", PDF, false},
		{"PPTX", PPTX, false},
		{" html ", HTML, false},
		{"doc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveBuiltin(t *testing.T) {
	g := New(nil, Options{})
	res, err := g.resolve(HTML, "revealjs_presentation")
	require.NoError(t, err)
	assert.NotNil(t, res.renderer)

	_, err = g.resolve(PDF, "no_such_template")
	assert.ErrorContains(t, err, "unknown template")
}

func TestResolveRejectsWrongFormat(t *testing.T) {
	g := New(nil, Options{})

	_, err := g.resolve(PDF, "business_modern")
	require.Error(t, err)
	assert.ErrorContains(t, err, "renders pptx, not pdf")

	_, err = g.resolve(PDF, "excel_dashboard")
	assert.ErrorContains(t, err, "renders xlsx, not pdf")

	// proposal_template ships in the pdf family but renders docx
	res, err := g.resolve(PDF, "proposal_template")
	require.NoError(t, err)
	assert.Equal(t, "proposal_template", res.renderer.Meta().Name)

	res, err = g.resolve(DOCX, "proposal_template")
	require.NoError(t, err)
	assert.NotNil(t, res.renderer)
}

func TestGenerateRejectsWrongFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	g := New(nil, Options{})
	_, err := g.Generate(context.Background(), Request{
		Format:     PDF,
		Template:   "business_modern",
		OutputPath: out,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "renders pptx, not pdf")
	assert.NoFileExists(t, out)
}

func TestGenerateEngineMismatch(t *testing.T) {
	g := New(nil, Options{})

	_, err := g.Generate(context.Background(), Request{
		Format:     HTML,
		Template:   "revealjs_presentation",
		OutputPath: filepath.Join(t.TempDir(), "deck.html"),
		Engine:     EngineChromium,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "uses the revealjs engine")

	path, err := g.Generate(context.Background(), Request{
		Format:     HTML,
		Template:   "revealjs_presentation",
		OutputPath: filepath.Join(t.TempDir(), "deck.html"),
		Engine:     EngineRevealJS,
	})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestApplyDefaultsFromConfig(t *testing.T) {
	cfg := docstudio.NewConfigManager(t.TempDir())
	g := New(cfg, Options{})

	req := Request{Format: HTML, Template: "revealjs_presentation"}
	g.applyDefaults(&req)
	assert.Equal(t, "ja", req.Language)
	assert.Equal(t, "business", req.ColorScheme)
	assert.Equal(t, "A4", req.PageSize)

	// explicit values win
	req = Request{Language: "en", ColorScheme: "dark", PageSize: "Letter"}
	g.applyDefaults(&req)
	assert.Equal(t, "en", req.Language)
	assert.Equal(t, "dark", req.ColorScheme)
	assert.Equal(t, "Letter", req.PageSize)
}

func TestResolveScriptStyleName(t *testing.T) {
	g := New(nil, Options{})
	res, err := g.resolve(PDF, "pdf_whitepaper")
	require.NoError(t, err)
	require.NotNil(t, res.renderer)
	assert.Equal(t, "whitepaper", res.renderer.Meta().Name)
}

func TestResolveScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "custom-report")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	g := New(nil, Options{TemplatesDir: dir})
	res, err := g.resolve(PDF, "custom-report")
	require.NoError(t, err)
	assert.Equal(t, script, res.script)
}

func TestGenerateHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck") // no extension on purpose

	g := New(nil, Options{})
	path, err := g.Generate(context.Background(), Request{
		Format:     HTML,
		Template:   "revealjs_presentation",
		OutputPath: out,
		Data:       map[string]any{"title": "Batch Deck"},
	})
	require.NoError(t, err)
	assert.Equal(t, out+".html", path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Batch Deck")
}

func TestGenerateValidation(t *testing.T) {
	g := New(nil, Options{})

	_, err := g.Generate(context.Background(), Request{Format: "nope", Template: "x", OutputPath: "y"})
	assert.ErrorContains(t, err, "unsupported format")

	_, err = g.Generate(context.Background(), Request{Format: HTML, OutputPath: "y"})
	assert.ErrorContains(t, err, "template is required")

	_, err = g.Generate(context.Background(), Request{Format: HTML, Template: "revealjs_presentation"})
	assert.ErrorContains(t, err, "output path is required")
}

func TestGenerateScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "shellgen")
	// the script honors the --output/--data-file contract
	require.NoError(t, os.WriteFile(script, []byte(
		"#!/bin/sh\nwhile [ $# -gt 0 ]; do\n"+
			"  if [ \"$1\" = \"--output\" ]; then out=$2; shift; fi\n"+
			"  shift\ndone\necho generated > \"$out\"\n"), 0o755))

	g := New(nil, Options{TemplatesDir: dir, ScriptTimeout: 30 * time.Second})
	out := filepath.Join(t.TempDir(), "doc.pdf")
	path, err := g.Generate(context.Background(), Request{
		Format:     PDF,
		Template:   "shellgen",
		OutputPath: out,
	})
	require.NoError(t, err)
	assert.Equal(t, out, path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "generated\n", string(raw))
}

func TestGenerateScriptFailureSurfacesStderr(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "badgen")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho boom >&2\nexit 3\n"), 0o755))

	g := New(nil, Options{TemplatesDir: dir})
	_, err := g.Generate(context.Background(), Request{
		Format:     PDF,
		Template:   "badgen",
		OutputPath: filepath.Join(t.TempDir(), "doc.pdf"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestBatchSequentialAndParallel(t *testing.T) {
	g := New(nil, Options{})
	outDir := t.TempDir()
	requests := []Request{
		{Format: HTML, Template: "revealjs_presentation", OutputPath: filepath.Join(outDir, "a.html")},
		{Format: HTML, Template: "revealjs_presentation", OutputPath: filepath.Join(outDir, "b.html")},
		{Format: HTML, Template: "missing_template", OutputPath: filepath.Join(outDir, "c.html")},
	}

	for _, parallel := range []bool{false, true} {
		summary := g.Batch(context.Background(), requests, BatchOptions{Parallel: parallel, MaxConcurrent: 2})
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 2, summary.Success)
		assert.Equal(t, 1, summary.Failed)
		assert.NotEmpty(t, summary.Results[2].Error)
	}
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()

	arrayManifest := filepath.Join(dir, "array.json")
	require.NoError(t, os.WriteFile(arrayManifest, []byte(
		`[{"format":"html","template":"revealjs_presentation","output":"a.html"}]`), 0o644))
	requests, err := LoadBatch(arrayManifest)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, HTML, requests[0].Format)

	objectManifest := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(objectManifest, []byte(
		`{"documents":[{"format":"pdf","template":"whitepaper","output":"w.pdf"}]}`), 0o644))
	requests, err = LoadBatch(objectManifest)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "whitepaper", requests[0].Template)

	_, err = LoadBatch(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(CacheConfig{
		TTL:    time.Hour,
		DBPath: filepath.Join(t.TempDir(), "gen.db"),
	})
	require.NoError(t, err)
	defer cache.Close()

	entry, err := cache.Get("html", "revealjs_presentation", `{"title":"x"}`)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, cache.Set("html", "revealjs_presentation", `{"title":"x"}`, "/tmp/out.html"))

	entry, err = cache.Get("html", "revealjs_presentation", `{"title":"x"}`)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "/tmp/out.html", entry.OutputPath)

	// different data is a different key
	entry, err = cache.Get("html", "revealjs_presentation", `{"title":"y"}`)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, cache.Clear())
	entry, err = cache.Get("html", "revealjs_presentation", `{"title":"x"}`)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestCacheDisabled(t *testing.T) {
	cache, err := NewCache(CacheConfig{})
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Set("pdf", "whitepaper", "{}", "/tmp/x.pdf"))
	entry, err := cache.Get("pdf", "whitepaper", "{}")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGenerateUsesCache(t *testing.T) {
	cache, err := NewCache(CacheConfig{
		TTL:    time.Hour,
		DBPath: filepath.Join(t.TempDir(), "gen.db"),
	})
	require.NoError(t, err)
	defer cache.Close()

	g := New(nil, Options{Cache: cache})
	out := filepath.Join(t.TempDir(), "deck.html")
	req := Request{Format: HTML, Template: "revealjs_presentation", OutputPath: out}

	path, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	firstStat, err := os.Stat(path)
	require.NoError(t, err)

	// second run is a cache hit and must not rewrite the file
	time.Sleep(10 * time.Millisecond)
	path2, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	secondStat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, firstStat.ModTime(), secondStat.ModTime())
}

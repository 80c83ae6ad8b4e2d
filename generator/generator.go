// Package generator turns a format, template and data payload into a
// finished document. Built-in templates render in-process through the
// render registry; custom templates are external scripts invoked with a
// data file.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/google/uuid"

	"github.com/flanksource/docstudio"
	"github.com/flanksource/docstudio/exec"
	"github.com/flanksource/docstudio/render"
	_ "github.com/flanksource/docstudio/render/builtin"
)

// Format is a supported output format.
type Format string

const (
	PDF  Format = "pdf"
	PPTX Format = "pptx"
	DOCX Format = "docx"
	XLSX Format = "xlsx"
	HTML Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{PDF, PPTX, DOCX, XLSX, HTML}

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s (supported: pdf, pptx, docx, xlsx, html)", s)
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }

// Engine names the rendering backend a template uses.
type Engine string

const (
	EngineChromium    Engine = "chromium"
	EngineWkhtmltopdf Engine = "wkhtmltopdf"
	EngineMaroto      Engine = "maroto"
	EngineGofpdf      Engine = "gofpdf"
	EngineStencil     Engine = "stencil"
	EngineOOXML       Engine = "ooxml"
	EngineExcelize    Engine = "excelize"
	EngineRevealJS    Engine = "revealjs"
	EngineScript      Engine = "script"
)

// Request describes one document to generate.
type Request struct {
	Format      Format         `json:"format"`
	Template    string         `json:"template"`
	OutputPath  string         `json:"output"`
	Data        map[string]any `json:"data,omitempty"`
	Engine      Engine         `json:"engine,omitempty"`
	Language    string         `json:"language,omitempty"`
	ColorScheme string         `json:"color_scheme,omitempty"`
	PageSize    string         `json:"page_size,omitempty"`
}

// Options tune a Generator.
type Options struct {
	TemplatesDir  string
	ScriptTimeout time.Duration
	Cache         *Cache
}

// Generator renders documents from requests.
type Generator struct {
	config   *docstudio.ConfigManager
	registry *render.Registry
	opts     Options
}

// New creates a Generator backed by the built-in registry.
func New(config *docstudio.ConfigManager, opts Options) *Generator {
	if opts.ScriptTimeout == 0 {
		opts.ScriptTimeout = 2 * time.Minute
	}
	if opts.TemplatesDir == "" && config != nil {
		opts.TemplatesDir = config.TemplatePath()
	}
	return &Generator{config: config, registry: render.Builtin, opts: opts}
}

// resolution is where a template name ended up pointing.
type resolution struct {
	renderer render.Renderer
	script   string
}

// crossFormat lists templates that ship with one format family but render
// another; proposal_template sits in the pdf family yet produces a
// stencil-filled docx, as in the original mapping.
var crossFormat = map[string]Format{"proposal_template": PDF}

func matchFormat(format Format, renderer render.Renderer) error {
	meta := renderer.Meta()
	if Format(meta.Format) == format || crossFormat[meta.Name] == format {
		return nil
	}
	return fmt.Errorf("template %s renders %s, not %s", meta.Name, meta.Format, format)
}

// resolve maps a template name to a built-in renderer or a script file.
// Order: explicit path, registry name, format-prefixed script-style name,
// script under the templates dir.
func (g *Generator) resolve(format Format, name string) (resolution, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasPrefix(name, ".") {
		if _, err := os.Stat(name); err != nil {
			return resolution{}, fmt.Errorf("template script not found: %s", name)
		}
		return resolution{script: name}, nil
	}
	if renderer, ok := g.registry.Get(name); ok {
		if err := matchFormat(format, renderer); err != nil {
			return resolution{}, err
		}
		return resolution{renderer: renderer}, nil
	}
	// script-style names like pdf_whitepaper map to the bare registry name
	if trimmed := strings.TrimPrefix(name, string(format)+"_"); trimmed != name {
		if renderer, ok := g.registry.Get(trimmed); ok {
			if err := matchFormat(format, renderer); err != nil {
				return resolution{}, err
			}
			return resolution{renderer: renderer}, nil
		}
	}
	if g.opts.TemplatesDir != "" {
		for _, candidate := range []string{
			filepath.Join(g.opts.TemplatesDir, name),
			filepath.Join(g.opts.TemplatesDir, name, "generate"),
		} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return resolution{script: candidate}, nil
			}
		}
	}
	return resolution{}, fmt.Errorf("unknown template: %s (run 'docstudio template list' for available templates)", name)
}

// checkEngine verifies an explicitly requested engine against the
// renderer's. Without a request the configured per-format default is
// consulted as a preference only; "auto" imposes nothing.
func (g *Generator) checkEngine(format Format, requested Engine, renderer render.Renderer) error {
	meta := renderer.Meta()
	if requested != "" && requested != "auto" && Engine(meta.Engine) != requested {
		return fmt.Errorf("template %s uses the %s engine (requested %s)", meta.Name, meta.Engine, requested)
	}
	if requested == "" && g.config != nil {
		if def := g.config.DefaultEngine(string(format)); def != "auto" && def != meta.Engine {
			logger.Debugf("template %s uses the %s engine, not the configured %s default %s",
				meta.Name, meta.Engine, format, def)
		}
	}
	return nil
}

// applyDefaults fills language, color scheme and page size from the
// configured defaults when the request leaves them empty.
func (g *Generator) applyDefaults(req *Request) {
	if g.config == nil {
		return
	}
	defaults := g.config.Load().Defaults
	if req.Language == "" {
		req.Language = defaults.Language
	}
	if req.ColorScheme == "" {
		req.ColorScheme = defaults.ColorScheme
	}
	if req.PageSize == "" {
		req.PageSize = defaults.PageSize
	}
}

// Generate renders one document and returns the final output path.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return "", err
	}
	if req.Template == "" {
		return "", fmt.Errorf("template is required")
	}
	if req.OutputPath == "" {
		return "", fmt.Errorf("output path is required")
	}

	outputPath := req.OutputPath
	if filepath.Ext(outputPath) == "" {
		outputPath += format.Extension()
	}

	res, err := g.resolve(format, req.Template)
	if err != nil {
		return "", err
	}
	if res.renderer != nil {
		if err := g.checkEngine(format, req.Engine, res.renderer); err != nil {
			return "", err
		}
	}
	g.applyDefaults(&req)

	data := render.Data(req.Data)
	if cached, ok := g.cacheLookup(format, req.Template, data, outputPath); ok {
		logger.Debugf("cache hit for %s/%s, skipping generation", format, req.Template)
		return cached, nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	start := time.Now()
	switch {
	case res.renderer != nil:
		job := render.Job{
			OutputPath:  outputPath,
			Data:        data,
			Language:    req.Language,
			ColorScheme: req.ColorScheme,
			PageSize:    req.PageSize,
		}
		if err := res.renderer.Render(ctx, job); err != nil {
			return "", fmt.Errorf("template %s: %w", req.Template, err)
		}
	default:
		if err := g.runScript(ctx, res.script, outputPath, data); err != nil {
			return "", err
		}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return "", fmt.Errorf("generation produced no output at %s: %w", outputPath, err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("generation produced an empty file at %s", outputPath)
	}
	logger.Infof("generated %s (%d bytes) in %s", outputPath, info.Size(), time.Since(start).Round(time.Millisecond))

	g.cacheStore(format, req.Template, data, outputPath)
	return outputPath, nil
}

// runScript invokes a custom template script with the data written to a
// temp JSON file.
func (g *Generator) runScript(ctx context.Context, script, outputPath string, data render.Data) error {
	dataFile := filepath.Join(os.TempDir(), fmt.Sprintf("docstudio-data-%s.json", uuid.NewString()))
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode template data: %w", err)
	}
	if err := os.WriteFile(dataFile, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	defer os.Remove(dataFile)

	logger.Debugf("running template script %s", script)
	proc := exec.Command(script, "--output", outputPath, "--data-file", dataFile).
		WithTimeout(g.opts.ScriptTimeout).
		Run(ctx)
	if !proc.IsOK() {
		return fmt.Errorf("template script %s failed: %w", filepath.Base(script), proc.Error())
	}
	return nil
}

func (g *Generator) cacheLookup(format Format, template string, data render.Data, outputPath string) (string, bool) {
	if g.opts.Cache == nil {
		return "", false
	}
	entry, err := g.opts.Cache.Get(string(format), template, data.JSON())
	if err != nil || entry == nil {
		return "", false
	}
	if entry.OutputPath != outputPath {
		return "", false
	}
	info, err := os.Stat(entry.OutputPath)
	if err != nil || info.Size() == 0 {
		return "", false
	}
	return entry.OutputPath, true
}

func (g *Generator) cacheStore(format Format, template string, data render.Data, outputPath string) {
	if g.opts.Cache == nil {
		return
	}
	if err := g.opts.Cache.Set(string(format), template, data.JSON(), outputPath); err != nil {
		logger.Warnf("failed to cache generation result: %v", err)
	}
}

// Package pdftpl contains the built-in PDF template designs. The HTML/CSS
// designs are converted with the chromium engine (wkhtmltopdf for the
// premium design); the rest draw the page directly with maroto or gofpdf.
package pdftpl

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/flanksource/docstudio/render"
	"github.com/flanksource/docstudio/render/htmlpdf"
)

// HTMLEngine converts the HTML designs. Overridable in tests.
var HTMLEngine htmlpdf.Engine = htmlpdf.Chromium()

// PremiumEngine converts the wkhtmltopdf-based premium design.
var PremiumEngine htmlpdf.Engine = htmlpdf.Wkhtmltopdf()

// htmlTemplate builds a renderer that executes an html/template over the
// merged sample+override data and converts the result to PDF.
func htmlTemplate(meta render.Meta, sample render.Data, tmpl *template.Template, engine func() htmlpdf.Engine) render.Renderer {
	return render.Func{
		Info: meta,
		Fn: func(ctx context.Context, job render.Job) error {
			data := render.Merge(sample, job.Data)
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
				return fmt.Errorf("template %s: %w", meta.Name, err)
			}
			opts := htmlpdf.DefaultPageOptions()
			if job.PageSize != "" {
				opts.Format = job.PageSize
			}
			if err := ensureDir(job.OutputPath); err != nil {
				return err
			}
			return engine().Convert(ctx, buf.String(), job.OutputPath, opts)
		},
	}
}

func ensureDir(outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

// Package htmlpdf converts rendered HTML documents to PDF. The primary
// engine drives headless Chromium through playwright; wkhtmltopdf is kept as
// the non-browser fallback for environments without a Chromium download.
package htmlpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/flanksource/commons/logger"
	"github.com/playwright-community/playwright-go"

	"github.com/flanksource/docstudio/shutdown"
)

// PageOptions control the PDF page geometry.
type PageOptions struct {
	Format          string // A4, A3, Letter
	Landscape       bool
	PrintBackground bool
	MarginTop       string
	MarginRight     string
	MarginBottom    string
	MarginLeft      string
}

// DefaultPageOptions matches the template scripts: full-bleed A4 with
// backgrounds printed.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		Format:          "A4",
		PrintBackground: true,
		MarginTop:       "0",
		MarginRight:     "0",
		MarginBottom:    "0",
		MarginLeft:      "0",
	}
}

// Engine converts an HTML document into a PDF file.
type Engine interface {
	Name() string
	Convert(ctx context.Context, html string, outputPath string, opts PageOptions) error
}

// ChromiumEngine renders HTML with a shared headless Chromium instance.
// The browser is launched lazily and stopped by a shutdown hook.
type ChromiumEngine struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

var chromium = &ChromiumEngine{}

// Chromium returns the process-wide Chromium engine.
func Chromium() *ChromiumEngine {
	return chromium
}

func (e *ChromiumEngine) Name() string { return "chromium" }

func (e *ChromiumEngine) ensureBrowser() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return nil
	}

	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("failed to install chromium: %w", err)
	}
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch()
	if err != nil {
		pw.Stop() //nolint:errcheck
		return fmt.Errorf("failed to launch chromium: %w", err)
	}

	e.pw = pw
	e.browser = browser
	shutdown.AddHookWithPriority("stopping chromium", shutdown.PriorityRenderers, func() {
		if err := e.Close(); err != nil {
			logger.Warnf("failed to stop chromium: %v", err)
		}
	})
	return nil
}

// Convert renders html into outputPath via page.pdf.
func (e *ChromiumEngine) Convert(ctx context.Context, html string, outputPath string, opts PageOptions) error {
	if err := e.ensureBrowser(); err != nil {
		return err
	}

	page, err := e.browser.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if err := page.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("failed to set page content: %w", err)
	}

	pdfOptions := playwright.PagePdfOptions{
		Path:            playwright.String(outputPath),
		Format:          playwright.String(opts.Format),
		PrintBackground: playwright.Bool(opts.PrintBackground),
		Landscape:       playwright.Bool(opts.Landscape),
		Margin: &playwright.Margin{
			Top:    playwright.String(opts.MarginTop),
			Right:  playwright.String(opts.MarginRight),
			Bottom: playwright.String(opts.MarginBottom),
			Left:   playwright.String(opts.MarginLeft),
		},
	}
	if _, err := page.PDF(pdfOptions); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

// Close stops the browser and the playwright driver.
func (e *ChromiumEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			return err
		}
		e.browser = nil
	}
	if e.pw != nil {
		if err := e.pw.Stop(); err != nil {
			return err
		}
		e.pw = nil
	}
	return nil
}

// WkhtmltopdfEngine shells out to wkhtmltopdf.
type WkhtmltopdfEngine struct{}

// Wkhtmltopdf returns the wkhtmltopdf engine.
func Wkhtmltopdf() *WkhtmltopdfEngine {
	return &WkhtmltopdfEngine{}
}

func (e *WkhtmltopdfEngine) Name() string { return "wkhtmltopdf" }

// Convert renders html into outputPath using the wkhtmltopdf binary.
func (e *WkhtmltopdfEngine) Convert(ctx context.Context, html string, outputPath string, opts PageOptions) error {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("wkhtmltopdf not available: %w", err)
	}

	switch strings.ToUpper(opts.Format) {
	case "A3":
		pdfg.PageSize.Set(wkhtmltopdf.PageSizeA3)
	case "LETTER":
		pdfg.PageSize.Set(wkhtmltopdf.PageSizeLetter)
	default:
		pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	}
	if opts.Landscape {
		pdfg.Orientation.Set(wkhtmltopdf.OrientationLandscape)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.PrintMediaType.Set(true)
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return fmt.Errorf("wkhtmltopdf failed: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return pdfg.WriteFile(outputPath)
}

package preflight

import (
	"fmt"
	"io"
	"os"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func (c *Checker) checkPDF(path string) []Result {
	var results []Result

	conf := model.NewDefaultConfiguration()
	if err := api.ValidateFile(path, conf); err != nil {
		results = append(results, Result{
			Check:         "metadata",
			Severity:      Error,
			Message:       "PDF failed structural validation",
			Details:       err.Error(),
			FixSuggestion: "regenerate the document; the output is corrupt",
		})
		return results
	}

	pages, err := api.PageCountFile(path)
	if err == nil {
		severity := Info
		msg := fmt.Sprintf("document has %d pages", pages)
		if pages == 0 {
			severity = Error
			msg = "document has no pages"
		}
		results = append(results, Result{Check: "metadata", Severity: severity, Message: msg})
	}

	if c.enabled("metadata") {
		results = append(results, checkPDFMetadata(path)...)
	}
	if c.enabled("fonts") || c.enabled("accessibility") {
		results = append(results, c.checkPDFText(path)...)
	}
	return results
}

// checkPDFMetadata reads the Info dictionary.
func checkPDFMetadata(path string) []Result {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return []Result{{
			Check:    "metadata",
			Severity: Warning,
			Message:  "could not read PDF metadata",
			Details:  err.Error(),
		}}
	}
	defer f.Close()

	var results []Result
	info := reader.Trailer().Key("Info")
	for _, field := range []string{"Title", "Author"} {
		value := strings.TrimSpace(info.Key(field).Text())
		if value == "" {
			results = append(results, Result{
				Check:         "metadata",
				Severity:      Warning,
				Message:       fmt.Sprintf("document %s is not set", strings.ToLower(field)),
				FixSuggestion: "run preflight with --fix to write metadata",
			})
		} else {
			results = append(results, Result{
				Check:    "metadata",
				Severity: Info,
				Message:  fmt.Sprintf("%s: %s", strings.ToLower(field), value),
			})
		}
	}
	return results
}

// checkPDFText verifies the document carries extractable text, which is
// the cheapest accessibility signal available.
func (c *Checker) checkPDFText(path string) []Result {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return []Result{{
			Check:         "accessibility",
			Severity:      Warning,
			Message:       "could not extract text from the document",
			Details:       err.Error(),
			FixSuggestion: "check that fonts are embedded rather than rasterised",
		}}
	}
	text, err := io.ReadAll(textReader)
	if err != nil || len(strings.TrimSpace(string(text))) == 0 {
		return []Result{{
			Check:         "accessibility",
			Severity:      Warning,
			Message:       "document contains no extractable text",
			FixSuggestion: "screen readers cannot process image-only pages",
		}}
	}
	return []Result{{
		Check:    "accessibility",
		Severity: Info,
		Message:  fmt.Sprintf("document carries %d characters of extractable text", len(text)),
	}}
}

// FixPDFMetadata writes missing Title/Author into the PDF in place. It is
// the only automated remediation preflight performs.
func FixPDFMetadata(path, title, author string) error {
	properties := map[string]string{}
	if title != "" {
		properties["Title"] = title
	}
	if author != "" {
		properties["Author"] = author
	}
	if len(properties) == 0 {
		return fmt.Errorf("nothing to fix: no title or author provided")
	}

	tmp := path + ".fixed"
	if err := api.AddPropertiesFile(path, tmp, properties, model.NewDefaultConfiguration()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write PDF metadata: %w", err)
	}
	return os.Rename(tmp, path)
}

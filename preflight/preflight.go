// Package preflight inspects generated documents for quality problems
// before they are shipped: structural validity, metadata, size limits and
// format-specific concerns.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
)

// Severity grades a preflight finding.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Result is one preflight finding.
type Result struct {
	Check         string   `json:"check"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	Details       string   `json:"details,omitempty"`
	FixSuggestion string   `json:"fix_suggestion,omitempty"`
}

// Summary aggregates every finding for one file.
type Summary struct {
	File       string           `json:"file"`
	Format     string           `json:"format"`
	Success    bool             `json:"success"`
	CanProceed bool             `json:"can_proceed"`
	Counts     map[Severity]int `json:"counts"`
	Results    []Result         `json:"results"`
}

// SupportedChecks names every check the checker knows, with descriptions.
var SupportedChecks = map[string]string{
	"fonts":         "fonts are embedded or safely substitutable",
	"images":        "embedded images are reasonably sized",
	"links":         "external links are inventoried",
	"colors":        "color usage fits the declared scheme",
	"accessibility": "document carries basic accessibility signals",
	"metadata":      "title and author metadata are present",
	"filesize":      "file stays under the per-format size limit",
}

// size limits in bytes per format
var sizeLimits = map[string]int64{
	".pdf":  50 << 20,
	".pptx": 100 << 20,
	".docx": 50 << 20,
	".xlsx": 50 << 20,
	".html": 10 << 20,
}

// Checker runs preflight checks against generated files.
type Checker struct {
	Checks []string // empty means all supported checks
}

// New creates a Checker limited to the given checks.
func New(checks ...string) (*Checker, error) {
	for _, check := range checks {
		if _, ok := SupportedChecks[check]; !ok {
			return nil, fmt.Errorf("unsupported check: %s", check)
		}
	}
	return &Checker{Checks: checks}, nil
}

func (c *Checker) enabled(check string) bool {
	if len(c.Checks) == 0 {
		return true
	}
	for _, name := range c.Checks {
		if name == check {
			return true
		}
	}
	return false
}

// Run inspects one file and returns the findings.
func (c *Checker) Run(path string) (Summary, error) {
	ext := strings.ToLower(filepath.Ext(path))
	summary := Summary{
		File:   path,
		Format: strings.TrimPrefix(ext, "."),
		Counts: map[Severity]int{},
	}

	info, err := os.Stat(path)
	if err != nil {
		return summary, fmt.Errorf("cannot preflight %s: %w", path, err)
	}

	var results []Result
	if c.enabled("filesize") {
		results = append(results, checkFileSize(ext, info.Size())...)
	}

	switch ext {
	case ".pdf":
		results = append(results, c.checkPDF(path)...)
	case ".pptx":
		results = append(results, c.checkPPTX(path)...)
	case ".docx":
		results = append(results, c.checkDOCX(path)...)
	case ".xlsx":
		// structural checks happen at generation time via excelize
	case ".html":
		results = append(results, c.checkHTML(path)...)
	default:
		return summary, fmt.Errorf("unsupported file type for preflight: %s", ext)
	}

	summary.Results = results
	for _, r := range results {
		summary.Counts[r.Severity]++
	}
	summary.Success = summary.Counts[Error] == 0 && summary.Counts[Warning] == 0
	summary.CanProceed = summary.Counts[Error] == 0

	logger.Debugf("preflight %s: %d findings (%d errors, %d warnings)",
		path, len(results), summary.Counts[Error], summary.Counts[Warning])
	return summary, nil
}

func checkFileSize(ext string, size int64) []Result {
	limit, ok := sizeLimits[ext]
	if !ok {
		return nil
	}
	if size > limit {
		return []Result{{
			Check:         "filesize",
			Severity:      Error,
			Message:       fmt.Sprintf("file is %d MB, over the %d MB limit", size>>20, limit>>20),
			FixSuggestion: "compress embedded images or split the document",
		}}
	}
	return []Result{{
		Check:    "filesize",
		Severity: Info,
		Message:  fmt.Sprintf("file size %d KB is within limits", size>>10),
	}}
}

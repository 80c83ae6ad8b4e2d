package docstudio

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// stackSignals maps marker files to what they say about the project.
var stackSignals = map[string]string{
	"go.mod":             "Go module",
	"package.json":       "Node.js project",
	"pyproject.toml":     "Python project",
	"requirements.txt":   "Python dependencies",
	"Cargo.toml":         "Rust crate",
	"pom.xml":            "Maven project",
	"Dockerfile":         "container build",
	"docker-compose.yml": "compose stack",
	"Makefile":           "make-based build",
	".github":            "GitHub workflows",
	ProjectConfigDir:     "doc-studio project config",
}

var documentExtensions = map[string]bool{
	".md": true, ".pdf": true, ".docx": true, ".pptx": true,
	".xlsx": true, ".txt": true, ".rst": true,
}

var assetExtensions = map[string]bool{
	".png": true, ".svg": true, ".jpg": true, ".jpeg": true,
	".ico": true, ".ttf": true, ".otf": true, ".woff": true, ".woff2": true,
}

var brandKeywords = []string{"logo", "brand", "icon", "font", "theme", "style"}

var ignoredDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "dist": true,
	"build": true, "target": true, "__pycache__": true, ".venv": true,
	".idea": true, ".vscode": true,
}

// DocumentFile is one existing document found in a project.
type DocumentFile struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// ProjectInfo summarises what an inspected project contains.
type ProjectInfo struct {
	Root        string         `json:"root"`
	Signals     []string       `json:"signals,omitempty"`
	Documents   []DocumentFile `json:"documents,omitempty"`
	BrandAssets []string       `json:"brand_assets,omitempty"`
	HasConfig   bool           `json:"has_config"`
}

// Inspector walks a project directory looking for documentation context:
// stack markers, existing documents and brand assets.
type Inspector struct {
	MaxDepth int
}

// NewInspector creates an Inspector with the default depth limit.
func NewInspector() *Inspector {
	return &Inspector{MaxDepth: 4}
}

// Inspect walks root and reports what it finds.
func (i *Inspector) Inspect(root string) (ProjectInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ProjectInfo{}, err
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return ProjectInfo{}, fmt.Errorf("not a directory: %s", root)
	}

	project := ProjectInfo{Root: absRoot}
	signals := map[string]bool{}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(rel, string(os.PathSeparator))

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if ignoredDirs[d.Name()] || depth >= i.maxDepth() {
				return filepath.SkipDir
			}
			if label, ok := stackSignals[d.Name()]; ok && depth == 0 {
				signals[fmt.Sprintf("%s (%s)", d.Name(), label)] = true
			}
			if d.Name() == ProjectConfigDir {
				project.HasConfig = true
			}
			return nil
		}

		if label, ok := stackSignals[d.Name()]; ok && depth == 0 {
			signals[fmt.Sprintf("%s (%s)", d.Name(), label)] = true
		}

		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case documentExtensions[ext]:
			if info, err := d.Info(); err == nil {
				project.Documents = append(project.Documents, DocumentFile{
					Path:     rel,
					Size:     info.Size(),
					Modified: info.ModTime(),
				})
			}
		case assetExtensions[ext] && isBrandAsset(rel):
			project.BrandAssets = append(project.BrandAssets, rel)
		}
		return nil
	})
	if err != nil {
		return ProjectInfo{}, err
	}

	project.Signals = lo.Keys(signals)
	sort.Strings(project.Signals)
	sort.Slice(project.Documents, func(a, b int) bool {
		return project.Documents[a].Path < project.Documents[b].Path
	})
	sort.Strings(project.BrandAssets)
	return project, nil
}

func (i *Inspector) maxDepth() int {
	if i.MaxDepth <= 0 {
		return 4
	}
	return i.MaxDepth
}

func isBrandAsset(rel string) bool {
	lower := strings.ToLower(rel)
	for _, keyword := range brandKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// JSON returns the inspection result as indented JSON.
func (p ProjectInfo) JSON() (string, error) {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Pretty renders a terminal summary of the inspection.
func (p ProjectInfo) Pretty() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Project: "+p.Root) + "\n")

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		b.WriteString(headingStyle.Render(title) + "\n")
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
	}

	section("Stack", lo.Map(p.Signals, func(s string, _ int) string {
		return valueStyle.Render(s)
	}))
	section("Documents", lo.Map(p.Documents, func(d DocumentFile, _ int) string {
		return valueStyle.Render(d.Path) + labelStyle.Render(fmt.Sprintf("  (%d KB)", d.Size>>10))
	}))
	section("Brand assets", lo.Map(p.BrandAssets, func(a string, _ int) string {
		return valueStyle.Render(a)
	}))

	if p.HasConfig {
		b.WriteString(labelStyle.Render("doc-studio project config present") + "\n")
	} else {
		b.WriteString(labelStyle.Render("no project config; run 'docstudio config init'") + "\n")
	}
	return b.String()
}

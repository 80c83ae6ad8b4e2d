// Package template catalogues built-in and custom document templates.
// Built-ins come from the render registry; custom templates are
// directories under the templates path with a manifest.json and a
// generator script.
package template

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/flanksource/docstudio/render"
	_ "github.com/flanksource/docstudio/render/builtin"
)

// Info describes one template, builtin or custom.
type Info struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Format       string   `json:"format"`
	Engine       string   `json:"engine,omitempty"`
	ColorSchemes []string `json:"color_schemes,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Author       string   `json:"author,omitempty"`
	Version      string   `json:"version,omitempty"`
	Preview      string   `json:"preview,omitempty"`
	Builtin      bool     `json:"builtin"`
	Path         string   `json:"path,omitempty"`
}

// Filter narrows List results.
type Filter struct {
	Format string
	Tag    string
}

// Manager lists and manages templates.
type Manager struct {
	TemplatesDir string
	registry     *render.Registry
}

// NewManager creates a Manager over the given custom templates directory.
func NewManager(templatesDir string) *Manager {
	return &Manager{TemplatesDir: templatesDir, registry: render.Builtin}
}

func builtinInfo(meta render.Meta) Info {
	return Info{
		Name:         meta.Name,
		DisplayName:  meta.DisplayName,
		Description:  meta.Description,
		Format:       meta.Format,
		Engine:       meta.Engine,
		ColorSchemes: meta.ColorSchemes,
		Tags:         meta.Tags,
		Builtin:      true,
	}
}

// List returns builtin then custom templates, optionally filtered.
func (m *Manager) List(filter Filter) ([]Info, error) {
	infos := lo.Map(m.registry.List(), func(r render.Renderer, _ int) Info {
		return builtinInfo(r.Meta())
	})

	custom, err := m.loadCustom()
	if err != nil {
		return nil, err
	}
	infos = append(infos, custom...)

	return lo.Filter(infos, func(info Info, _ int) bool {
		if filter.Format != "" && info.Format != filter.Format {
			return false
		}
		if filter.Tag != "" && !lo.Contains(info.Tags, filter.Tag) {
			return false
		}
		return true
	}), nil
}

// Get returns one template by name.
func (m *Manager) Get(name string) (Info, error) {
	if renderer, ok := m.registry.Get(name); ok {
		return builtinInfo(renderer.Meta()), nil
	}
	custom, err := m.loadCustom()
	if err != nil {
		return Info{}, err
	}
	for _, info := range custom {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("unknown template: %s", name)
}

// loadCustom reads every manifest.json under the templates directory.
// Directories without a manifest are skipped with a warning.
func (m *Manager) loadCustom() ([]Info, error) {
	if m.TemplatesDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(m.TemplatesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.TemplatesDir, entry.Name())
		manifest := filepath.Join(dir, "manifest.json")
		raw, err := os.ReadFile(manifest)
		if err != nil {
			logger.Debugf("skipping %s: no manifest.json", dir)
			continue
		}
		var info Info
		if err := json.Unmarshal(raw, &info); err != nil {
			logger.Warnf("skipping %s: invalid manifest: %v", dir, err)
			continue
		}
		if info.Name == "" {
			info.Name = entry.Name()
		}
		info.Builtin = false
		info.Path = dir
		infos = append(infos, info)
	}
	return infos, nil
}

// Create scaffolds a custom template directory with a manifest and a stub
// generator script.
func (m *Manager) Create(name, format, description string) (string, error) {
	if m.TemplatesDir == "" {
		return "", fmt.Errorf("templates directory is not configured")
	}
	if _, ok := m.registry.Get(name); ok {
		return "", fmt.Errorf("template %s is builtin and cannot be recreated", name)
	}
	dir := filepath.Join(m.TemplatesDir, name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("template %s already exists at %s", name, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create template directory: %w", err)
	}

	info := Info{Name: name, Format: format, Description: description, Version: "0.1.0"}
	manifest, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), manifest, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	stub := fmt.Sprintf(`#!/bin/sh
# %s template generator
# invoked as: generate --output <path> --data-file <json>
echo "template %s is not implemented yet" >&2
exit 1
`, name, name)
	if err := os.WriteFile(filepath.Join(dir, "generate"), []byte(stub), 0o755); err != nil {
		return "", fmt.Errorf("failed to write generator stub: %w", err)
	}

	logger.Infof("created template %s at %s", name, dir)
	return dir, nil
}

// Delete removes a custom template. Builtins are refused.
func (m *Manager) Delete(name string) error {
	if _, ok := m.registry.Get(name); ok {
		return fmt.Errorf("template %s is builtin and cannot be deleted", name)
	}
	dir := filepath.Join(m.TemplatesDir, name)
	if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err != nil {
		return fmt.Errorf("unknown custom template: %s", name)
	}
	return os.RemoveAll(dir)
}

// Export writes a custom template directory into a zip archive.
func (m *Manager) Export(name, archivePath string) error {
	if _, ok := m.registry.Get(name); ok {
		return fmt.Errorf("template %s is builtin and cannot be exported", name)
	}
	dir := filepath.Join(m.TemplatesDir, name)
	if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err != nil {
		return fmt.Errorf("unknown custom template: %s", name)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(filepath.Join(name, rel)))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
}

// Import unpacks a template archive into the templates directory.
func (m *Manager) Import(archivePath string) (string, error) {
	if m.TemplatesDir == "" {
		return "", fmt.Errorf("templates directory is not configured")
	}
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	var name string
	for _, f := range zr.File {
		clean := filepath.Clean(f.Name)
		if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
			return "", fmt.Errorf("archive entry escapes the templates directory: %s", f.Name)
		}
		if name == "" {
			name = strings.SplitN(filepath.ToSlash(clean), "/", 2)[0]
		}
		target := filepath.Join(m.TemplatesDir, clean)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", err
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return "", err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return "", err
		}
	}

	if name == "" {
		return "", fmt.Errorf("archive %s is empty", archivePath)
	}
	if _, err := os.Stat(filepath.Join(m.TemplatesDir, name, "manifest.json")); err != nil {
		return "", fmt.Errorf("archive %s does not contain a template manifest", archivePath)
	}
	logger.Infof("imported template %s", name)
	return name, nil
}

// DataSchema describes the data keys a template family consumes.
func DataSchema(name string) map[string]string {
	switch {
	case strings.Contains(name, "dashboard"):
		return map[string]string{
			"title":   "workbook title",
			"kpis":    "list of {label, value}",
			"months":  "category labels for the chart",
			"series":  "list of {label, values}",
			"regions": "list of {name, revenue, growth}",
		}
	case strings.Contains(name, "proposal"):
		return map[string]string{
			"title":      "document title",
			"client":     "client name",
			"summary":    "executive summary",
			"sections":   "list of {heading, body}",
			"milestones": "list of {phase, deliverable, date}",
			"costs":      "list of {item, amount}",
		}
	case strings.Contains(name, "resume"):
		return map[string]string{
			"name":       "candidate name",
			"role":       "target role",
			"summary":    "profile summary",
			"skills":     "list of skill names",
			"experience": "list of {company, role, period, detail}",
			"education":  "list of {school, degree, year}",
		}
	default:
		return map[string]string{
			"title":    "document title",
			"subtitle": "secondary title",
			"sections": "list of {heading, bullets or body}",
		}
	}
}

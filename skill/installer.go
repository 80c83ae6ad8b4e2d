// Package skill installs the doc-studio skill bundle into the skill
// directories of supported AI coding assistant CLIs.
package skill

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/flanksource/commons/logger"
	"gopkg.in/yaml.v3"
)

// SkillDirName is the directory a skill occupies inside a tool's skills dir.
const SkillDirName = "doc-studio"

// ManifestFile identifies a valid skill bundle.
const ManifestFile = "SKILL.md"

// Tool describes a supported CLI and where it looks for skills.
type Tool struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	// skillsDir is relative to the user's home directory, keyed by GOOS
	// where platforms differ.
	skillsDir map[string]string
}

// SkillsDir returns the tool's skills directory under home for the
// current platform.
func (t Tool) SkillsDir(home string) string {
	dir, ok := t.skillsDir[runtime.GOOS]
	if !ok {
		dir = t.skillsDir["linux"]
	}
	return filepath.Join(home, filepath.FromSlash(dir))
}

// Tools lists the supported CLI tools.
var Tools = []Tool{
	{
		Name:        "claude-code",
		DisplayName: "Claude Code",
		skillsDir:   map[string]string{"linux": ".claude/skills", "darwin": ".claude/skills", "windows": ".claude/Skills"},
	},
	{
		Name:        "codex",
		DisplayName: "Codex CLI",
		skillsDir:   map[string]string{"linux": ".codex/skills"},
	},
	{
		Name:        "gemini",
		DisplayName: "Gemini CLI",
		skillsDir:   map[string]string{"linux": ".gemini/skills"},
	},
	{
		Name:        "opencode",
		DisplayName: "OpenCode",
		skillsDir:   map[string]string{"linux": ".opencode/skills"},
	},
}

// LookupTool finds a supported tool by name.
func LookupTool(name string) (Tool, error) {
	for _, t := range Tools {
		if t.Name == name {
			return t, nil
		}
	}
	names := make([]string, 0, len(Tools))
	for _, t := range Tools {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return Tool{}, fmt.Errorf("unknown CLI tool %q (available: %s)", name, strings.Join(names, ", "))
}

// Manifest is the YAML frontmatter of a SKILL.md file.
type Manifest struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
}

// ReadManifest parses the YAML frontmatter of the bundle's SKILL.md.
func ReadManifest(bundleDir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(bundleDir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read skill manifest: %w", err)
	}
	front, err := frontmatter(raw)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(front, &m); err != nil {
		return nil, fmt.Errorf("invalid skill manifest frontmatter: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("skill manifest is missing a name")
	}
	return &m, nil
}

func frontmatter(raw []byte) ([]byte, error) {
	content := bytes.TrimLeft(raw, "\uFEFF\r\n")
	if !bytes.HasPrefix(content, []byte("---")) {
		return nil, fmt.Errorf("%s has no YAML frontmatter", ManifestFile)
	}
	rest := content[3:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, fmt.Errorf("%s frontmatter is not terminated", ManifestFile)
	}
	return rest[:end], nil
}

// Installer copies or links a skill bundle into tool skill directories.
type Installer struct {
	// BundleDir is the skill bundle to install, containing SKILL.md.
	BundleDir string
	// HomeDir overrides the user home directory, for tests.
	HomeDir string
}

func (in *Installer) home() (string, error) {
	if in.HomeDir != "" {
		return in.HomeDir, nil
	}
	return os.UserHomeDir()
}

// Install places the bundle under the tool's skills directory. With
// symlink set the bundle is linked in place instead of copied, which
// keeps a development checkout live. An existing installation is
// replaced.
func (in *Installer) Install(toolName string, symlink bool) (string, error) {
	tool, err := LookupTool(toolName)
	if err != nil {
		return "", err
	}
	if _, err := ReadManifest(in.BundleDir); err != nil {
		return "", err
	}
	home, err := in.home()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	skillsDir := tool.SkillsDir(home)
	target := filepath.Join(skillsDir, SkillDirName)
	logger.Infof("installing skill for %s at %s", tool.DisplayName, target)

	if _, err := os.Lstat(target); err == nil {
		logger.Debugf("replacing existing installation at %s", target)
		if err := removeInstalled(target); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(skillsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create skills directory: %w", err)
	}

	src, err := filepath.Abs(in.BundleDir)
	if err != nil {
		return "", err
	}
	if symlink {
		if err := os.Symlink(src, target); err != nil {
			return "", fmt.Errorf("failed to link skill: %w", err)
		}
	} else if err := copyTree(src, target); err != nil {
		return "", err
	}

	if _, err := os.Stat(filepath.Join(target, ManifestFile)); err != nil {
		return "", fmt.Errorf("installation at %s is missing %s", target, ManifestFile)
	}
	return target, nil
}

// Uninstall removes the skill from the tool's skills directory. It
// returns false when nothing was installed.
func (in *Installer) Uninstall(toolName string) (bool, error) {
	tool, err := LookupTool(toolName)
	if err != nil {
		return false, err
	}
	home, err := in.home()
	if err != nil {
		return false, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	target := filepath.Join(tool.SkillsDir(home), SkillDirName)
	if _, err := os.Lstat(target); os.IsNotExist(err) {
		return false, nil
	}
	logger.Infof("uninstalling skill for %s from %s", tool.DisplayName, target)
	if err := removeInstalled(target); err != nil {
		return false, err
	}
	return true, nil
}

// ToolStatus reports one tool's installation state.
type ToolStatus struct {
	Tool      Tool   `json:"tool"`
	Installed bool   `json:"installed"`
	Symlinked bool   `json:"symlinked"`
	Path      string `json:"path"`
}

// Status reports installation state for every supported tool.
func (in *Installer) Status() ([]ToolStatus, error) {
	home, err := in.home()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	statuses := make([]ToolStatus, 0, len(Tools))
	for _, tool := range Tools {
		target := filepath.Join(tool.SkillsDir(home), SkillDirName)
		st := ToolStatus{Tool: tool, Path: target}
		if fi, err := os.Lstat(target); err == nil {
			st.Installed = true
			st.Symlinked = fi.Mode()&os.ModeSymlink != 0
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// removeInstalled handles both symlinked and copied installations.
func removeInstalled(target string) error {
	fi, err := os.Lstat(target)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		err = os.Remove(target)
	} else {
		err = os.RemoveAll(target)
	}
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", target, err)
	}
	return nil
}

var copyIgnore = map[string]bool{
	".git":         true,
	"output":       true,
	"node_modules": true,
	"__pycache__":  true,
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if info.IsDir() && copyIgnore[info.Name()] && rel != "." {
			return filepath.SkipDir
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

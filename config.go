package docstudio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
)

// ConfigFileName is the name of the preferences file inside the config directory.
const ConfigFileName = "doc-studio.config.json"

// ProjectConfigDir is the project-local configuration directory, checked
// before the user-level directory.
const ProjectConfigDir = ".doc-studio"

// OutputConfig controls where generated documents are written.
type OutputConfig struct {
	BasePath string            `json:"base_path"`
	Subdirs  map[string]string `json:"subdirs"`
}

// TemplateConfig controls template discovery.
type TemplateConfig struct {
	Path    string   `json:"path"`
	Builtin []string `json:"builtin"`
}

// FontConfig names the preferred font families.
type FontConfig struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Monospace string `json:"monospace"`
}

// DefaultsConfig holds document-level defaults applied when a request leaves
// them unset.
type DefaultsConfig struct {
	Language    string     `json:"language"`
	ColorScheme string     `json:"color_scheme"`
	Font        FontConfig `json:"font"`
	PageSize    string     `json:"page_size"`
}

// EngineConfig maps each format to its default rendering engine.
type EngineConfig struct {
	PDF  string `json:"pdf"`
	PPTX string `json:"pptx"`
	DOCX string `json:"docx"`
	XLSX string `json:"xlsx"`
	HTML string `json:"html"`
}

// PreflightConfig toggles post-generation checks.
type PreflightConfig struct {
	Enabled bool     `json:"enabled"`
	Checks  []string `json:"checks"`
}

// SkillConfig is the persisted preferences document.
type SkillConfig struct {
	Version   string          `json:"version"`
	Output    OutputConfig    `json:"output"`
	Templates TemplateConfig  `json:"templates"`
	Defaults  DefaultsConfig  `json:"defaults"`
	Engines   EngineConfig    `json:"engines"`
	Preflight PreflightConfig `json:"preflight"`
}

// BuiltinTemplateNames is the canonical list of templates shipped with the
// skill. Kept in sync with the render registry.
var BuiltinTemplateNames = []string{
	"whitepaper", "catalog", "portfolio", "infographic", "flyer",
	"reportlab_advanced", "weasyprint_premium", "matplotlib_datareport",
	"fpdf2_modern", "proposal_template",
	"business_modern", "creative_gradient", "technical_dark",
	"minimalist", "corporate_formal", "advanced_business",
	"proposal", "manual", "resume",
	"excel_dashboard",
	"revealjs_presentation",
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() SkillConfig {
	return SkillConfig{
		Version: "1.0.0",
		Output: OutputConfig{
			BasePath: "./output",
			Subdirs: map[string]string{
				"pdf":  "pdf",
				"pptx": "pptx",
				"docx": "word",
				"xlsx": "excel",
				"html": "html",
			},
		},
		Templates: TemplateConfig{
			Path:    "./templates",
			Builtin: append([]string(nil), BuiltinTemplateNames...),
		},
		Defaults: DefaultsConfig{
			Language:    "ja",
			ColorScheme: "business",
			Font: FontConfig{
				Primary:   "Noto Sans JP",
				Secondary: "Inter",
				Monospace: "Consolas",
			},
			PageSize: "A4",
		},
		Engines: EngineConfig{
			PDF:  "chromium",
			PPTX: "ooxml",
			DOCX: "ooxml",
			XLSX: "excelize",
			HTML: "revealjs",
		},
		Preflight: PreflightConfig{
			Enabled: true,
			Checks:  []string{"fonts", "images", "colors"},
		},
	}
}

// ConfigManager loads and persists the skill configuration.
type ConfigManager struct {
	ConfigDir  string
	ConfigFile string

	mu     sync.Mutex
	loaded *SkillConfig
}

// NewConfigManager creates a manager rooted at dir, or at the platform
// default when dir is empty.
func NewConfigManager(dir string) *ConfigManager {
	if dir == "" {
		dir = defaultConfigDir()
	}
	return &ConfigManager{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, ConfigFileName),
	}
}

// defaultConfigDir prefers a project-local .doc-studio directory, falling
// back to the per-user config directory.
func defaultConfigDir() string {
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ProjectConfigDir)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "doc-studio")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "doc-studio"
	}
	return filepath.Join(home, ".config", "doc-studio")
}

// Load reads the configuration file, returning defaults when it is missing
// or unreadable. The result is cached for the lifetime of the manager.
func (m *ConfigManager) Load() SkillConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded != nil {
		return *m.loaded
	}

	cfg := DefaultConfig()
	raw, err := os.ReadFile(m.ConfigFile)
	if err == nil {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			logger.Warnf("failed to load config %s: %v, using defaults", m.ConfigFile, err)
			cfg = DefaultConfig()
		}
	}
	m.loaded = &cfg
	return cfg
}

// Save writes cfg to the config file, creating the directory if needed.
func (m *ConfigManager) Save(cfg SkillConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.ConfigFile, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	m.loaded = &cfg
	return nil
}

// Get returns a configuration value addressed by a dot path, e.g.
// "defaults.font.primary". Returns nil when the path does not resolve.
func (m *ConfigManager) Get(key string) any {
	doc := m.asMap()
	var value any = doc
	for _, part := range strings.Split(key, ".") {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return value
}

// Set updates a configuration value addressed by a dot path and persists the
// result. Intermediate objects are created as needed.
func (m *ConfigManager) Set(key string, value any) error {
	doc := m.asMap()
	parts := strings.Split(key, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to re-marshal config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return m.Save(cfg)
}

// Reset restores the default configuration.
func (m *ConfigManager) Reset() error {
	return m.Save(DefaultConfig())
}

// Show returns the current configuration as indented JSON.
func (m *ConfigManager) Show() string {
	cfg := m.Load()
	raw, _ := json.MarshalIndent(cfg, "", "  ")
	return string(raw)
}

// asMap returns the loaded config as a generic JSON object for path access.
func (m *ConfigManager) asMap() map[string]any {
	cfg := m.Load()
	raw, _ := json.Marshal(cfg)
	doc := map[string]any{}
	_ = json.Unmarshal(raw, &doc)
	return doc
}

// OutputPath returns the directory documents of the given format are written
// to when the caller passes a bare filename.
func (m *ConfigManager) OutputPath(format string) string {
	cfg := m.Load()
	subdir, ok := cfg.Output.Subdirs[format]
	if !ok {
		subdir = format
	}
	return filepath.Join(cfg.Output.BasePath, subdir)
}

// TemplatePath returns the custom templates directory.
func (m *ConfigManager) TemplatePath() string {
	return m.Load().Templates.Path
}

// DefaultEngine returns the configured engine for a format, or "auto".
func (m *ConfigManager) DefaultEngine(format string) string {
	cfg := m.Load()
	switch format {
	case "pdf":
		return cfg.Engines.PDF
	case "pptx":
		return cfg.Engines.PPTX
	case "docx":
		return cfg.Engines.DOCX
	case "xlsx":
		return cfg.Engines.XLSX
	case "html":
		return cfg.Engines.HTML
	}
	return "auto"
}

// PreflightEnabled reports whether generation should be followed by checks.
func (m *ConfigManager) PreflightEnabled() bool {
	return m.Load().Preflight.Enabled
}

// PreflightChecks returns the configured check names.
func (m *ConfigManager) PreflightChecks() []string {
	return m.Load().Preflight.Checks
}

// CreateProjectConfig writes a default configuration under
// <project>/.doc-studio and returns the created directory.
func (m *ConfigManager) CreateProjectConfig(projectPath string) (string, error) {
	if projectPath == "" {
		projectPath = "."
	}
	dir := filepath.Join(projectPath, ProjectConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create project config directory: %w", err)
	}
	raw, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write project config: %w", err)
	}
	return dir, nil
}

var validLanguages = []string{"ja", "en", "zh", "ko"}
var validColorSchemes = []string{"business", "creative", "dark", "minimal", "formal"}

// Validate checks the current configuration and returns a list of problems.
func (m *ConfigManager) Validate() []string {
	var errs []string
	cfg := m.Load()

	if _, err := os.Stat(cfg.Output.BasePath); err != nil {
		errs = append(errs, fmt.Sprintf("output path does not exist: %s", cfg.Output.BasePath))
	}
	if _, err := os.Stat(cfg.Templates.Path); err != nil {
		errs = append(errs, fmt.Sprintf("template path does not exist: %s", cfg.Templates.Path))
	}
	if !lo.Contains(validLanguages, cfg.Defaults.Language) {
		errs = append(errs, fmt.Sprintf("invalid language: %s", cfg.Defaults.Language))
	}
	if !lo.Contains(validColorSchemes, cfg.Defaults.ColorScheme) {
		errs = append(errs, fmt.Sprintf("invalid color scheme: %s", cfg.Defaults.ColorScheme))
	}
	return errs
}

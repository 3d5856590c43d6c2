// Package config loads lazystrings configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/lazystrings/internal/theme"
	"gopkg.in/yaml.v3"
)

// overridePrefix is the optional namespace of --config overrides.
const overridePrefix = "ls."

// ResourceFile identifies one managed strings.xml file.
type ResourceFile struct {
	Dir  string
	Name string
}

// Path joins the directory and file name.
func (f ResourceFile) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// AppConfig defines the global lazystrings configuration options.
type AppConfig struct {
	Files      []ResourceFile
	Theme      string // Theme name: see AvailableThemes in internal/theme; empty means detect
	DebugLog   string
	ShowIcons  bool // Render a Nerd Font icon next to the source file column (default: true)
	WatchFiles bool // Notify when a managed file changes on disk (default: true)
	PrefsFile  string
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Files:      []ResourceFile{},
		ShowIcons:  true,
		WatchFiles: true,
	}
}

// ResourcePaths returns the expanded paths of the configured files, in order.
func (c *AppConfig) ResourcePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		p := f.Path()
		if expanded, err := expandPath(p); err == nil {
			p = expanded
		}
		paths = append(paths, p)
	}
	return paths
}

// AddFiles appends resource files given as plain paths.
func (c *AppConfig) AddFiles(paths ...string) {
	for _, p := range paths {
		if f, ok := fileFromPath(p); ok {
			c.Files = append(c.Files, f)
		}
	}
}

// ApplyCLIOverrides applies key=value overrides, optionally prefixed with "ls.".
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	for _, override := range overrides {
		key, value, ok := strings.Cut(override, "=")
		if !ok {
			return fmt.Errorf("invalid override %q: expected key=value", override)
		}
		key = strings.TrimPrefix(strings.TrimSpace(key), overridePrefix)
		value = strings.TrimSpace(value)

		switch key {
		case "theme":
			normalized := NormalizeThemeName(value)
			if normalized == "" {
				return fmt.Errorf("unknown theme %q", value)
			}
			c.Theme = normalized
		case "debug_log":
			c.DebugLog = value
		case "prefs_file":
			c.PrefsFile = value
		case "show_icons":
			c.ShowIcons = coerceBool(value, c.ShowIcons)
		case "watch_files":
			c.WatchFiles = coerceBool(value, c.WatchFiles)
		case "files":
			c.Files = nil
			for _, p := range strings.Split(value, ",") {
				c.AddFiles(p)
			}
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
	}
	return nil
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func fileFromPath(path string) (ResourceFile, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ResourceFile{}, false
	}
	return ResourceFile{Dir: filepath.Dir(path), Name: filepath.Base(path)}, true
}

// parseFiles accepts plain path strings or {dir, name} / {path} maps.
func parseFiles(value any) []ResourceFile {
	raw, ok := value.([]any)
	if !ok {
		return []ResourceFile{}
	}

	files := make([]ResourceFile, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			if f, ok := fileFromPath(v); ok {
				files = append(files, f)
			}
		case map[string]any:
			if p, ok := v["path"].(string); ok {
				if f, ok := fileFromPath(p); ok {
					files = append(files, f)
				}
				continue
			}
			dir, _ := v["dir"].(string)
			name, _ := v["name"].(string)
			dir = strings.TrimSpace(dir)
			name = strings.TrimSpace(name)
			if dir == "" {
				continue
			}
			if name == "" {
				name = "strings.xml"
			}
			files = append(files, ResourceFile{Dir: dir, Name: name})
		}
	}
	return files
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	cfg.Files = parseFiles(data["files"])
	if themeName, ok := data["theme"].(string); ok {
		cfg.Theme = NormalizeThemeName(themeName)
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		cfg.DebugLog = strings.TrimSpace(debugLog)
	}
	if prefsFile, ok := data["prefs_file"].(string); ok {
		cfg.PrefsFile = strings.TrimSpace(prefsFile)
	}
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.WatchFiles = coerceBool(data["watch_files"], cfg.WatchFiles)

	return cfg
}

// Dir returns the lazystrings configuration directory.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "lazystrings")
}

// StateDir returns the directory used for persisted preferences.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "lazystrings")
}

// LoadConfig reads the application configuration from a YAML file. Without
// an explicit path it looks for config.yaml then config.yml in Dir(). A
// missing file yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string
	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		base := filepath.Clean(Dir())
		paths = []string{
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		}
	}

	for _, path := range paths {
		// #nosec G304 -- path is the user's own configuration file
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) && configPath == "" {
			continue
		}
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if yamlData == nil {
			return DefaultConfig(), nil
		}
		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// ExpandPath expands a leading "~" and environment variables.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, available := range theme.AvailableThemes() {
		if name == available {
			return name
		}
	}
	return ""
}

// Package completion holds flag metadata used for shell completion.
package completion

import (
	"strings"

	"github.com/chmouel/lazystrings/internal/theme"
)

// ConfigPrefix is the optional namespace of --config overrides.
const ConfigPrefix = "ls."

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Short       string   // Single letter alias, if any
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// GetFlags returns metadata for all lazystrings global flags.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "resource",
			Short:       "r",
			Description: "strings.xml file to manage",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "theme",
			Short:       "t",
			Description: "Override UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "config",
			Short:       "C",
			Description: "Override a config value",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
			Values:      ConfigKeys(""),
		},
	}
}

// ConfigKeys returns the override keys matching prefix, formatted as
// "ls.key=" for completion.
func ConfigKeys(prefix string) []string {
	prefix = strings.TrimPrefix(prefix, ConfigPrefix)
	keys := []string{"files", "theme", "debug_log", "prefs_file", "show_icons", "watch_files"}

	var matches []string
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, ConfigPrefix+key+"=")
		}
	}
	return matches
}

// ConfigValues returns value suggestions for a config key.
func ConfigValues(key string) []string {
	switch strings.TrimPrefix(key, ConfigPrefix) {
	case "theme":
		return theme.AvailableThemes()
	case "show_icons", "watch_files":
		return []string{"true", "false"}
	default:
		return nil
	}
}

// Lookup finds a flag by its long or short name, with or without dashes.
func Lookup(arg string) (FlagInfo, bool) {
	name := strings.TrimLeft(arg, "-")
	if name == "" {
		return FlagInfo{}, false
	}
	for _, f := range GetFlags() {
		if f.Name == name || (f.Short != "" && f.Short == name) {
			return f, true
		}
	}
	return FlagInfo{}, false
}

// Suggest returns completion candidates for the word following prev.
// It returns nil when prev is not a flag with enumerated values.
func Suggest(prev, current string) []string {
	flag, ok := Lookup(prev)
	if !ok || !flag.HasValue {
		return nil
	}
	if flag.Name == "config" {
		if key, _, found := strings.Cut(current, "="); found {
			values := ConfigValues(key)
			out := make([]string, 0, len(values))
			for _, v := range values {
				out = append(out, key+"="+v)
			}
			return out
		}
		return ConfigKeys(current)
	}

	var out []string
	for _, v := range flag.Values {
		if strings.HasPrefix(v, current) {
			out = append(out, v)
		}
	}
	return out
}

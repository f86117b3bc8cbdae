// Package tuning loads controller parameter sets from YAML. Defaults are
// embedded; a tuning/ directory next to the binary overrides them, and a
// Watcher picks up edits for live reload.
package tuning

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var paramsFS embed.FS

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Load returns the raw bytes of a parameter file, preferring the on-disk
// copy over the embedded default.
func Load(name string) ([]byte, error) {
	clean := cleanParamPath(name)
	if data, err := os.ReadFile(diskParamPath(clean)); err == nil {
		return data, nil
	}
	return paramsFS.ReadFile(clean)
}

// LoadScript returns the bytes of a behaviour script by name.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("tuning", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return scriptsFS.ReadFile(clean)
}

// ModTime reports the on-disk override's modification time, if one exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskParamPath(cleanParamPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanParamPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "tuning/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "tuning/")
	s = strings.TrimPrefix(s, "scripts/")
	return fmt.Sprintf("scripts/%s", s)
}

func diskParamPath(clean string) string {
	return filepath.Join("tuning", filepath.FromSlash(clean))
}

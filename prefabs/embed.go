package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// DiskRoot is where edited copies are looked up before the embedded ones.
// Empty disables disk overrides.
var DiskRoot = "prefabs"

// Load returns a prefab file, preferring the disk copy so edits picked up by
// the watcher take effect without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if path, ok := diskPrefabPath(clean); ok {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript loads a wave script by bare name ("waves.tengo").
func LoadScript(name string) ([]byte, error) {
	return Load(cleanScriptPath(name))
}

func ModTime(name string) (time.Time, bool) {
	path, ok := diskPrefabPath(cleanPrefabPath(name))
	if !ok {
		return time.Time{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	s := cleanPrefabPath(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPrefabPath(clean string) (string, bool) {
	if DiskRoot == "" || clean == "" {
		return "", false
	}
	return filepath.Join(DiskRoot, filepath.FromSlash(clean)), true
}

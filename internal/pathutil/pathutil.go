package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHomePath replaces a leading ~ or ~/ with the current user's
// home directory. Paths it cannot expand are returned unchanged.
func ExpandHomePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ResolveStateDir returns the configured state directory, falling back
// to the given default when the configured value is blank.
func ResolveStateDir(configured, fallback string) string {
	dir := strings.TrimSpace(configured)
	if dir == "" {
		dir = fallback
	}
	return filepath.Clean(ExpandHomePath(dir))
}

// ResolveStateChildDir joins a named child directory onto the state
// dir, using fallbackName when the configured name is blank.
func ResolveStateChildDir(stateDir, configuredName, fallbackName string) string {
	name := strings.TrimSpace(configuredName)
	if name == "" {
		name = fallbackName
	}
	return filepath.Join(stateDir, name)
}

// WithinRoot resolves path to an absolute, symlink-free-lexical form
// and reports whether it stays inside root. Relative paths are joined
// onto root before the check, so "../../etc/passwd" style locations
// resolve outside and are rejected.
func WithinRoot(root, path string) (string, bool) {
	root = strings.TrimSpace(root)
	path = strings.TrimSpace(path)
	if root == "" || path == "" {
		return "", false
	}
	absRoot, err := filepath.Abs(filepath.Clean(ExpandHomePath(root)))
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", false
	}
	if absPath == absRoot {
		return absPath, true
	}
	prefix := absRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(absPath, prefix) {
		return absPath, false
	}
	return absPath, true
}

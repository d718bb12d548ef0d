package layout

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no layout or stylesheet exists in the
// search path.
var ErrNotFound = errors.New("file not found in search path")

// searchDirs returns the directories probed for layouts and stylesheets,
// in priority order. The wlogout directories are included so existing
// configurations keep working.
func searchDirs() []string {
	var dirs []string
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(configDir, "wayleave"),
			filepath.Join(configDir, "wlogout"),
		)
	}
	return append(dirs,
		"/etc/wayleave",
		"/etc/wlogout",
		"/usr/local/etc/wayleave",
		"/usr/local/etc/wlogout",
	)
}

// FindFile searches the standard directories for the first existing file
// with one of the given names.
func FindFile(names ...string) (string, error) {
	for _, dir := range searchDirs() {
		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && info.Mode().IsRegular() {
				slog.Debug("found file in search path", "path", path)
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%v: %w", names, ErrNotFound)
}

// FindStylesheet resolves the CSS path: an explicit path must exist,
// otherwise style.css is searched for.
func FindStylesheet(explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("stylesheet %s: %w", explicit, err)
		}
		if !info.Mode().IsRegular() {
			return "", fmt.Errorf("stylesheet %s: not a regular file", explicit)
		}
		return explicit, nil
	}
	return FindFile("style.css")
}

// Load resolves and parses a layout. An empty path searches the standard
// locations for layout.json, layout.yaml, then the legacy layout file.
// "-" reads from stdin.
func Load(path string) (*Layout, error) {
	if path == "-" {
		return Parse(os.Stdin, "<stdin>")
	}

	if path == "" {
		found, err := FindFile("layout.json", "layout.yaml", "layout.yml", "layout")
		if err != nil {
			return nil, err
		}
		path = found
	} else if info, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	} else if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("layout %s: not a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(io.Reader(f), path)
}

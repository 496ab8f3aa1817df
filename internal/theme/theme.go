package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved CSS theme with its imports inlined.
type Theme struct {
	Name    string    // theme name without .css
	Path    string    // file on disk; empty for bundled themes
	CSS     string    // CSS with @import statements resolved
	ModTime time.Time // of Path when last read
}

// IsBundled reports whether the theme came from the embedded set.
func (t *Theme) IsBundled() bool {
	return t.Path == ""
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "toastui", "themes"), nil
}

// Resolve finds a theme by name. A file in dir overrides a bundled theme of
// the same name. Unknown names resolve to the default theme with an error
// the caller may log.
func Resolve(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir != "" {
		path := filepath.Join(dir, name+".css")
		if _, err := os.Stat(path); err == nil {
			return readTheme(name, path)
		}
	}

	if IsEmbeddedTheme(name) {
		css, _ := GetEmbeddedTheme(name)
		return &Theme{Name: name, CSS: ProcessImports(css, "", nil)}, nil
	}

	css, _ := GetEmbeddedTheme(DefaultThemeName)
	def := &Theme{Name: DefaultThemeName, CSS: ProcessImports(css, "", nil)}
	return def, fmt.Errorf("theme %q not found", name)
}

func readTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat theme: %w", err)
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}
	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, falling back to the bundled
// themes and partials. The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) && baseDir != "" {
			fullPath = filepath.Join(baseDir, importPath)
		}
		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		// Bundled CSS has no directory; its relative imports are bundled too.
		var data []byte
		err := os.ErrNotExist
		if baseDir != "" || filepath.IsAbs(importPath) {
			data, err = os.ReadFile(fullPath)
		}
		if err != nil {
			if embedded, found := GetEmbeddedTheme(filepath.Base(importPath)); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		return "/* imported: " + importPath + " */\n" + ProcessImports(string(data), filepath.Dir(fullPath), seen)
	})
}

// Reload rereads the theme from disk if it changed since the last read.
// Returns true if the CSS changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled() {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	fresh, err := readTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}

	changed := fresh.CSS != t.CSS
	t.CSS = fresh.CSS
	t.ModTime = fresh.ModTime
	return changed, nil
}

// Info describes an available theme for listing.
type Info struct {
	Name    string
	Path    string
	Bundled bool
}

// ListAvailableThemes lists bundled themes followed by user themes in dir.
// A user theme with a bundled name is listed once, as the user file.
func ListAvailableThemes(dir string) ([]Info, error) {
	index := make(map[string]int)
	var themes []Info

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, Info{Name: name, Bundled: true})
	}

	if dir == "" {
		return themes, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".css" {
			continue
		}
		info := Info{Name: strings.TrimSuffix(name, ".css"), Path: filepath.Join(dir, name)}
		if i, ok := index[info.Name]; ok {
			themes[i] = info
			continue
		}
		index[info.Name] = len(themes)
		themes = append(themes, info)
	}

	return themes, nil
}

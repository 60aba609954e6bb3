// Package files resolves configured build-artifact paths into a concrete
// ordered list of uploadable files, before any browser work starts.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// supportedExtensions are the storefront's accepted package formats.
var supportedExtensions = map[string]bool{
	".ext": true,
	".pak": true,
	".mod": true,
}

// SupportedExtension reports whether path has one of the accepted artifact
// extensions.
func SupportedExtension(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Resolve expands a comma-separated path spec into an ordered list of existing
// artifact files. Each segment may be:
//
//   - a single file, which must carry a supported extension
//   - a directory, contributing its supported files (non-recursive, sorted)
//   - a glob pattern over file names, e.g. "dist/*.ext"
//
// Relative segments are resolved against projectRoot. Input order is
// preserved across segments; it becomes the published build order.
func Resolve(spec string, projectRoot string) ([]string, error) {
	var all []string

	for _, segment := range strings.Split(spec, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		path := segment
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectRoot, path)
		}

		resolved, err := resolveSegment(path)
		if err != nil {
			return nil, err
		}
		all = append(all, resolved...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no build files resolved from %q", spec)
	}
	return all, nil
}

func resolveSegment(path string) ([]string, error) {
	if hasGlobMeta(filepath.Base(path)) {
		return resolvePattern(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path %s does not exist", path)
	}

	if info.IsDir() {
		return resolveDir(path)
	}

	if !SupportedExtension(path) {
		return nil, fmt.Errorf("unsupported file extension on %s (supported: .ext, .pak, .mod)", path)
	}
	return []string{path}, nil
}

func resolveDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if SupportedExtension(name) {
			found = append(found, filepath.Join(dir, name))
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("directory %s contains no build files", dir)
	}
	sort.Strings(found)
	return found, nil
}

// resolvePattern matches a glob over the file names of the pattern's parent
// directory.
func resolvePattern(path string) ([]string, error) {
	dir := filepath.Dir(path)
	pattern, err := glob.Compile(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", filepath.Base(path), err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() || !pattern.Match(entry.Name()) {
			continue
		}
		if !SupportedExtension(entry.Name()) {
			return nil, fmt.Errorf("unsupported file extension on %s (supported: .ext, .pak, .mod)", filepath.Join(dir, entry.Name()))
		}
		found = append(found, filepath.Join(dir, entry.Name()))
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("pattern %q matched no files in %s", filepath.Base(path), dir)
	}
	sort.Strings(found)
	return found, nil
}

func hasGlobMeta(name string) bool {
	return strings.ContainsAny(name, "*?[{")
}
